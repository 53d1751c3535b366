package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/pawup/shelter-api/internal/domain"
	"github.com/pawup/shelter-api/internal/events"
	"github.com/pawup/shelter-api/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	seq    int
	getErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
		if u.Username != nil && user.Username != nil && *u.Username == *user.Username {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("u%d", r.seq)
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username != nil && *u.Username == username })
}

func (r *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateAccess(_ context.Context, id, access string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Access = access
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakeAnimalRepo struct {
	animals     map[string]*domain.Animal
	order       []string
	newestCalls int
}

func newFakeAnimalRepo() *fakeAnimalRepo {
	return &fakeAnimalRepo{animals: map[string]*domain.Animal{}}
}

func (r *fakeAnimalRepo) Create(_ context.Context, animal *domain.Animal) error {
	for _, a := range r.animals {
		if animal.NumICAD != "" && a.NumICAD == animal.NumICAD {
			return repository.ErrDuplicate
		}
	}
	animal.ID = fmt.Sprintf("a%d", len(r.order)+1)
	cp := *animal
	r.animals[animal.ID] = &cp
	r.order = append(r.order, animal.ID)
	return nil
}

func (r *fakeAnimalRepo) Update(_ context.Context, animal *domain.Animal) error {
	if _, ok := r.animals[animal.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *animal
	r.animals[animal.ID] = &cp
	return nil
}

func (r *fakeAnimalRepo) GetByID(_ context.Context, id string) (*domain.Animal, error) {
	a, ok := r.animals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAnimalRepo) List(_ context.Context) ([]domain.Animal, error) {
	out := make([]domain.Animal, 0, len(r.order))
	for _, id := range r.order {
		if a, ok := r.animals[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAnimalRepo) Newest(_ context.Context, limit int) ([]domain.Animal, error) {
	r.newestCalls++
	out := make([]domain.Animal, 0, limit)
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		if a, ok := r.animals[r.order[i]]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAnimalRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.animals[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.animals, id)
	return nil
}

type fakeAssociationRepo struct {
	assos []domain.Association
}

func (r *fakeAssociationRepo) Create(_ context.Context, asso *domain.Association) error {
	for _, a := range r.assos {
		if a.Email == asso.Email {
			return repository.ErrDuplicate
		}
	}
	asso.ID = fmt.Sprintf("s%d", len(r.assos)+1)
	r.assos = append(r.assos, *asso)
	return nil
}

func (r *fakeAssociationRepo) List(_ context.Context) ([]domain.Association, error) {
	return append([]domain.Association{}, r.assos...), nil
}

type recordingDispatcher struct {
	events.Dispatcher
	published []events.Event
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{Dispatcher: events.NewInMemoryDispatcher()}
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return d.Dispatcher.Publish(ctx, event)
}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}
