package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawup/shelter-api/internal/api/dto"
	"github.com/pawup/shelter-api/internal/auth"
	"github.com/pawup/shelter-api/internal/domain"
	"github.com/pawup/shelter-api/internal/service"
	apperrors "github.com/pawup/shelter-api/pkg/util"
)

// UsersHandler exposes account profile and administration endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Get handles GET /user/:id. Non-admins may only read their own profile.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "user")
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)
	if identity.ID != id && identity.Access != domain.AccessAdmin {
		return apperrors.NewForbidden("access denied")
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// List handles GET /manageUsers.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// UpdateAccess handles PUT /update-user/:id.
func (h *UsersHandler) UpdateAccess(c *fiber.Ctx) error {
	id, err := pathID(c, "user")
	if err != nil {
		return err
	}
	var req dto.UpdateAccessRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateAccess(c.UserContext(), id, req.Access)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Delete handles DELETE /delete-user/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "user")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
