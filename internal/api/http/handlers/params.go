package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pawup/shelter-api/internal/api/dto"
	apperrors "github.com/pawup/shelter-api/pkg/util"
)

// pathID returns the :id route parameter when it is a well-formed UUID.
func pathID(c *fiber.Ctx, resource string) (string, error) {
	raw := c.Params("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewNotFound(resource, map[string]any{"id": raw})
	}
	return id.String(), nil
}

// bind parses and validates a request body.
func bind(c *fiber.Ctx, req dto.Validatable) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.ValidationError(req.Validate())
}
