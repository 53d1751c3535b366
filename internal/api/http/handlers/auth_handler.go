package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pawup/shelter-api/internal/api/dto"
	"github.com/pawup/shelter-api/internal/auth"
	"github.com/pawup/shelter-api/internal/service"
	apperrors "github.com/pawup/shelter-api/pkg/util"
)

// AuthHandler exposes signup, login, logout and token introspection.
type AuthHandler struct {
	auth        *service.AuthService
	cookie      auth.CookieOptions
	frontendURL string
}

// NewAuthHandler constructs handler. GET /logout redirects to frontendURL when set.
func NewAuthHandler(authService *service.AuthService, cookie auth.CookieOptions, frontendURL string) *AuthHandler {
	return &AuthHandler{auth: authService, cookie: cookie, frontendURL: frontendURL}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Signup(c.UserContext(), service.SignupInput{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Login handles POST /login. The token is only ever sent as a cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewInvalidCredentials(err)
	}

	result, err := h.auth.Login(c.UserContext(), req.Login(), req.Password)
	if err != nil {
		return err
	}

	h.cookie.Set(c, result.Token, result.ExpiresAt)
	return c.JSON(fiber.Map{"data": dto.LoginResponse{Status: "logged_in", ExpiresAt: result.ExpiresAt}})
}

// Logout handles GET and POST /logout by expiring the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookie.Clear(c)
	if c.Method() == fiber.MethodGet && h.frontendURL != "" {
		return c.Redirect(h.frontendURL, http.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged_out"}})
}

// WhoAmI handles GET /whoami and /getJwt. It returns the claims the gate
// verified, keyed by the deployment's claim schema.
func (h *AuthHandler) WhoAmI(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated(auth.ErrMissingToken)
	}
	return c.JSON(identity.Fields(h.auth.TokenService().Schema()))
}
