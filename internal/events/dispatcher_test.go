package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls []string
	d.Subscribe(EventAnimalAdded, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventAnimalAdded, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error {
		calls = append(calls, "unrelated")
		return nil
	})

	err := d.Publish(context.Background(), New(EventAnimalAdded, "a1", Actor{}, AnimalPayload{Name: "Rex"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"first:a1", "second:a1"}, calls)
}

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	var reached bool
	d.Subscribe(EventUserSignedUp, func(context.Context, Event) error { return boom })
	d.Subscribe(EventUserSignedUp, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), New(EventUserSignedUp, "u1", Actor{}, nil))
	require.ErrorIs(t, err, boom)
	assert.True(t, reached)
}

func TestPublishRecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventAnimalUpdated, func(context.Context, Event) error { panic("nil map") })
	d.Subscribe(EventAnimalUpdated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), New(EventAnimalUpdated, "a1", Actor{}, nil))
	require.ErrorIs(t, err, ErrHandlerPanicked)
	assert.True(t, reached)

	var handlerErr *HandlerError
	require.ErrorAs(t, err, &handlerErr)
	assert.Equal(t, EventAnimalUpdated, handlerErr.Type)
	assert.Equal(t, 0, handlerErr.Index)
}

func TestSubscribeIgnoresNilHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	d.Subscribe(EventUserDeleted, nil)
	assert.NoError(t, d.Publish(context.Background(), New(EventUserDeleted, "u1", Actor{}, nil)))
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), New(EventAssociationAdded, "s1", Actor{}, nil)))
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	d := NewInMemoryDispatcher()

	var (
		mu    sync.Mutex
		count int
	)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Subscribe(EventAnimalDeleted, func(context.Context, Event) error {
				mu.Lock()
				count++
				mu.Unlock()
				return nil
			})
		}()
		go func() {
			defer wg.Done()
			_ = d.Publish(context.Background(), New(EventAnimalDeleted, "a1", Actor{}, nil))
		}()
	}
	wg.Wait()

	mu.Lock()
	before := count
	mu.Unlock()
	require.NoError(t, d.Publish(context.Background(), New(EventAnimalDeleted, "a1", Actor{}, nil)))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, before+8, count)
}

func TestNewStampsEvent(t *testing.T) {
	actor := Actor{UserID: "u1", Access: "admin"}
	e := New(EventUserAccessChanged, "u2", actor, UserAccessChangedPayload{OldAccess: "public", NewAccess: "admin"})

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventUserAccessChanged, e.Type)
	assert.Equal(t, "u2", e.SubjectID)
	assert.Equal(t, actor, e.Actor)
	assert.False(t, e.Timestamp.IsZero())
}
