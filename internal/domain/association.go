package domain

import "time"

// Association is a partner animal-welfare organisation.
type Association struct {
	ID          string
	Name        string
	Tel         string
	Email       string
	LocStreet   string
	LocCity     string
	LocPostal   string
	SocFacebook string
	SocInsta    string
	SocOther    string
	CreatedAt   time.Time
}
