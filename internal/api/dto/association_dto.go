package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/pawup/shelter-api/internal/domain"
)

// AssociationRequest payload for registering a partner association.
type AssociationRequest struct {
	Name        string `json:"name"`
	Tel         string `json:"tel"`
	Email       string `json:"email"`
	LocStreet   string `json:"loc_street"`
	LocCity     string `json:"loc_city"`
	LocPostal   string `json:"loc_postal"`
	SocFacebook string `json:"soc_fb"`
	SocInsta    string `json:"soc_insta"`
	SocOther    string `json:"soc_other"`
}

// Validate checks the association payload.
func (r AssociationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Tel, validation.Required, validation.Length(6, 20)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.LocPostal, validation.Length(0, 10), is.Digit),
		validation.Field(&r.SocFacebook, is.URL),
		validation.Field(&r.SocInsta, is.URL),
		validation.Field(&r.SocOther, is.URL),
	)
}

// ToDomain maps the payload.
func (r AssociationRequest) ToDomain() *domain.Association {
	return &domain.Association{
		Name:        strings.TrimSpace(r.Name),
		Tel:         strings.TrimSpace(r.Tel),
		Email:       r.Email,
		LocStreet:   r.LocStreet,
		LocCity:     r.LocCity,
		LocPostal:   r.LocPostal,
		SocFacebook: r.SocFacebook,
		SocInsta:    r.SocInsta,
		SocOther:    r.SocOther,
	}
}

// AssociationResponse is the public view of an association.
type AssociationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tel         string `json:"tel"`
	Email       string `json:"email"`
	LocStreet   string `json:"loc_street,omitempty"`
	LocCity     string `json:"loc_city,omitempty"`
	LocPostal   string `json:"loc_postal,omitempty"`
	SocFacebook string `json:"soc_fb,omitempty"`
	SocInsta    string `json:"soc_insta,omitempty"`
	SocOther    string `json:"soc_other,omitempty"`
}

// NewAssociationResponse maps a domain association.
func NewAssociationResponse(a *domain.Association) AssociationResponse {
	return AssociationResponse{
		ID:          a.ID,
		Name:        a.Name,
		Tel:         a.Tel,
		Email:       a.Email,
		LocStreet:   a.LocStreet,
		LocCity:     a.LocCity,
		LocPostal:   a.LocPostal,
		SocFacebook: a.SocFacebook,
		SocInsta:    a.SocInsta,
		SocOther:    a.SocOther,
	}
}

// NewAssociationResponses maps a list of associations.
func NewAssociationResponses(assos []domain.Association) []AssociationResponse {
	out := make([]AssociationResponse, 0, len(assos))
	for i := range assos {
		out = append(out, NewAssociationResponse(&assos[i]))
	}
	return out
}
