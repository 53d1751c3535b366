package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pawup/shelter-api/internal/domain"
)

// AnimalRepository defines persistence access for shelter animals.
type AnimalRepository interface {
	Create(ctx context.Context, animal *domain.Animal) error
	Update(ctx context.Context, animal *domain.Animal) error
	GetByID(ctx context.Context, id string) (*domain.Animal, error)
	List(ctx context.Context) ([]domain.Animal, error)
	Newest(ctx context.Context, limit int) ([]domain.Animal, error)
	Delete(ctx context.Context, id string) error
}

type animalRepository struct {
	db DB
}

// NewAnimalRepository returns a Postgres-backed implementation.
func NewAnimalRepository(db DB) AnimalRepository {
	return &animalRepository{db: db}
}

const animalColumns = `id, num_icad, name, sex, race, birth_day, desc_short, desc_long, created_at, updated_at`

func (r *animalRepository) Create(ctx context.Context, animal *domain.Animal) error {
	const query = `
        INSERT INTO animals (num_icad, name, sex, race, birth_day, desc_short, desc_long)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		animal.NumICAD,
		animal.Name,
		animal.Sex,
		animal.Race,
		animal.BirthDay,
		animal.DescShort,
		animal.DescLong,
	).Scan(&animal.ID, &animal.CreatedAt, &animal.UpdatedAt)
	return mapWriteError(err)
}

func (r *animalRepository) Update(ctx context.Context, animal *domain.Animal) error {
	const query = `
        UPDATE animals SET num_icad=$1, name=$2, sex=$3, race=$4, birth_day=$5,
            desc_short=$6, desc_long=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.db.Exec(ctx, query,
		animal.NumICAD,
		animal.Name,
		animal.Sex,
		animal.Race,
		animal.BirthDay,
		animal.DescShort,
		animal.DescLong,
		animal.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *animalRepository) GetByID(ctx context.Context, id string) (*domain.Animal, error) {
	return scanAnimal(r.db.QueryRow(ctx, `SELECT `+animalColumns+` FROM animals WHERE id=$1`, id))
}

func (r *animalRepository) List(ctx context.Context) ([]domain.Animal, error) {
	return r.list(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY name`)
}

func (r *animalRepository) Newest(ctx context.Context, limit int) ([]domain.Animal, error) {
	return r.list(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *animalRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM animals WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *animalRepository) list(ctx context.Context, query string, args ...any) ([]domain.Animal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	animals := make([]domain.Animal, 0)
	for rows.Next() {
		animal, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		animals = append(animals, *animal)
	}
	return animals, rows.Err()
}

func scanAnimal(row pgx.Row) (*domain.Animal, error) {
	var animal domain.Animal
	if err := row.Scan(
		&animal.ID,
		&animal.NumICAD,
		&animal.Name,
		&animal.Sex,
		&animal.Race,
		&animal.BirthDay,
		&animal.DescShort,
		&animal.DescLong,
		&animal.CreatedAt,
		&animal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &animal, nil
}
