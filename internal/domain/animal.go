package domain

import "time"

// Animal is a shelter animal up for adoption.
type Animal struct {
	ID        string
	NumICAD   string
	Name      string
	Sex       string
	Race      string
	BirthDay  *time.Time
	DescShort string
	DescLong  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
