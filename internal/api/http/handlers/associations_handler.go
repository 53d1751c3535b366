package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pawup/shelter-api/internal/api/dto"
	"github.com/pawup/shelter-api/internal/service"
)

// AssociationsHandler exposes partner associations.
type AssociationsHandler struct {
	assos *service.AssociationService
}

// NewAssociationsHandler constructs handler.
func NewAssociationsHandler(assos *service.AssociationService) *AssociationsHandler {
	return &AssociationsHandler{assos: assos}
}

// Create handles POST /api/addAsso.
func (h *AssociationsHandler) Create(c *fiber.Ctx) error {
	var req dto.AssociationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	asso := req.ToDomain()
	if err := h.assos.Create(c.UserContext(), asso); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssociationResponse(asso)})
}

// List handles GET /api/assos.
func (h *AssociationsHandler) List(c *fiber.Ctx) error {
	assos, err := h.assos.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssociationResponses(assos)})
}
