package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/pawup/shelter-api/internal/domain"
)

// DateLayout is the wire format of birth dates.
const DateLayout = "2006-01-02"

// AnimalRequest payload for creating or replacing an animal.
type AnimalRequest struct {
	NumICAD   string  `json:"numICAD"`
	Name      string  `json:"name"`
	Sex       string  `json:"sex"`
	Race      string  `json:"race"`
	BirthDay  *string `json:"birthDay,omitempty"`
	DescShort string  `json:"desc_short"`
	DescLong  string  `json:"desc_long"`
}

// Validate checks the animal payload.
func (r AnimalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NumICAD, validation.Length(15, 15), is.Digit),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Sex, validation.In("M", "F", "male", "female")),
		validation.Field(&r.Race, validation.Length(0, 100)),
		validation.Field(&r.BirthDay, validation.Date(DateLayout)),
		validation.Field(&r.DescShort, validation.Length(0, 280)),
		validation.Field(&r.DescLong, validation.Length(0, 5000)),
	)
}

// ToDomain maps the payload. It must only be called after Validate.
func (r AnimalRequest) ToDomain(id string) *domain.Animal {
	animal := &domain.Animal{
		ID:        id,
		NumICAD:   strings.TrimSpace(r.NumICAD),
		Name:      strings.TrimSpace(r.Name),
		Sex:       r.Sex,
		Race:      strings.TrimSpace(r.Race),
		DescShort: r.DescShort,
		DescLong:  r.DescLong,
	}
	if r.BirthDay != nil && *r.BirthDay != "" {
		if birth, err := time.Parse(DateLayout, *r.BirthDay); err == nil {
			animal.BirthDay = &birth
		}
	}
	return animal
}

// AnimalResponse is the public view of an animal.
type AnimalResponse struct {
	ID        string    `json:"id"`
	NumICAD   string    `json:"numICAD,omitempty"`
	Name      string    `json:"name"`
	Sex       string    `json:"sex,omitempty"`
	Race      string    `json:"race,omitempty"`
	BirthDay  *string   `json:"birthDay,omitempty"`
	DescShort string    `json:"desc_short,omitempty"`
	DescLong  string    `json:"desc_long,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAnimalResponse maps a domain animal.
func NewAnimalResponse(animal *domain.Animal) AnimalResponse {
	resp := AnimalResponse{
		ID:        animal.ID,
		NumICAD:   animal.NumICAD,
		Name:      animal.Name,
		Sex:       animal.Sex,
		Race:      animal.Race,
		DescShort: animal.DescShort,
		DescLong:  animal.DescLong,
		CreatedAt: animal.CreatedAt,
	}
	if animal.BirthDay != nil {
		birth := animal.BirthDay.Format(DateLayout)
		resp.BirthDay = &birth
	}
	return resp
}

// NewAnimalResponses maps a list of animals.
func NewAnimalResponses(animals []domain.Animal) []AnimalResponse {
	out := make([]AnimalResponse, 0, len(animals))
	for i := range animals {
		out = append(out, NewAnimalResponse(&animals[i]))
	}
	return out
}
