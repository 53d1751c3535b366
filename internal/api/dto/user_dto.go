package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/pawup/shelter-api/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	LastName  string  `form:"lastName" json:"lastName"`
	FirstName string  `form:"firstName" json:"firstName"`
	Email     string  `form:"email" json:"email"`
	Username  *string `form:"username" json:"username,omitempty"`
	Password  string  `form:"password" json:"password"`
}

// Validate checks the signup payload.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 254), is.Email),
		validation.Field(&r.Username, validation.NilOrNotEmpty, validation.Length(3, 64), is.Alphanumeric),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

// LoginRequest payload for login. Identifier may be sent as email or
// username; the deployment's claim schema decides which lookup runs.
type LoginRequest struct {
	Identifier string `form:"identifier" json:"identifier"`
	Email      string `form:"email" json:"email"`
	Username   string `form:"username" json:"username"`
	Password   string `form:"password" json:"password"`
}

// Login returns the identifier the caller supplied.
func (r LoginRequest) Login() string {
	for _, v := range []string{r.Identifier, r.Email, r.Username} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Validate only checks presence; shape checks would reveal which accounts exist.
func (r LoginRequest) Validate() error {
	r.Identifier = r.Login()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateAccessRequest payload for changing an account's access level.
type UpdateAccessRequest struct {
	Access string `json:"access"`
}

// Validate checks the access level.
func (r UpdateAccessRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Access, validation.Required, validation.In(domain.AccessPublic, domain.AccessAdmin)),
	)
}

// LoginResponse is returned after a successful login. The token itself only
// travels in the cookie.
type LoginResponse struct {
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// UserResponse is an account without its password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	Email     string    `json:"email"`
	Username  *string   `json:"username,omitempty"`
	Access    string    `json:"access"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		LastName:  user.LastName,
		FirstName: user.FirstName,
		Email:     user.Email,
		Username:  user.Username,
		Access:    user.Access,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponses maps a list of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
