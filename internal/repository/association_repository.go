package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pawup/shelter-api/internal/domain"
)

// AssociationRepository manages partner associations.
type AssociationRepository interface {
	Create(ctx context.Context, asso *domain.Association) error
	List(ctx context.Context) ([]domain.Association, error)
}

type associationRepository struct {
	db DB
}

// NewAssociationRepository constructs repository.
func NewAssociationRepository(db DB) AssociationRepository {
	return &associationRepository{db: db}
}

func (r *associationRepository) Create(ctx context.Context, asso *domain.Association) error {
	const query = `
        INSERT INTO associations (name, tel, email, loc_street, loc_city, loc_postal, soc_fb, soc_insta, soc_other)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		asso.Name,
		asso.Tel,
		asso.Email,
		asso.LocStreet,
		asso.LocCity,
		asso.LocPostal,
		asso.SocFacebook,
		asso.SocInsta,
		asso.SocOther,
	).Scan(&asso.ID, &asso.CreatedAt)
	return mapWriteError(err)
}

func (r *associationRepository) List(ctx context.Context) ([]domain.Association, error) {
	const query = `
        SELECT id, name, tel, email, loc_street, loc_city, loc_postal, soc_fb, soc_insta, soc_other, created_at
        FROM associations ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Association, error) {
		var a domain.Association
		err := row.Scan(&a.ID, &a.Name, &a.Tel, &a.Email, &a.LocStreet, &a.LocCity, &a.LocPostal,
			&a.SocFacebook, &a.SocInsta, &a.SocOther, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, err
	}
	return assos, nil
}
