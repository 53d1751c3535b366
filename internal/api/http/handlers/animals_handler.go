package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pawup/shelter-api/internal/api/dto"
	"github.com/pawup/shelter-api/internal/service"
)

// AnimalsHandler exposes the adoption catalogue.
type AnimalsHandler struct {
	animals *service.AnimalService
}

// NewAnimalsHandler constructs handler.
func NewAnimalsHandler(animals *service.AnimalService) *AnimalsHandler {
	return &AnimalsHandler{animals: animals}
}

// Newest handles GET /api/newest.
func (h *AnimalsHandler) Newest(c *fiber.Ctx) error {
	animals, err := h.animals.Newest(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAnimalResponses(animals)})
}

// List handles GET /allAnimals.
func (h *AnimalsHandler) List(c *fiber.Ctx) error {
	animals, err := h.animals.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAnimalResponses(animals)})
}

// Get handles GET /animal/:id.
func (h *AnimalsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "animal")
	if err != nil {
		return err
	}
	animal, err := h.animals.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAnimalResponse(animal)})
}

// Create handles POST /addAnimal.
func (h *AnimalsHandler) Create(c *fiber.Ctx) error {
	var req dto.AnimalRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	animal := req.ToDomain("")
	if err := h.animals.Create(c.UserContext(), animal); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAnimalResponse(animal)})
}

// Update handles PUT /update-animal/:id.
func (h *AnimalsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "animal")
	if err != nil {
		return err
	}
	var req dto.AnimalRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	animal, err := h.animals.Update(c.UserContext(), req.ToDomain(id))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAnimalResponse(animal)})
}

// Delete handles DELETE /delete-animal/:id.
func (h *AnimalsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "animal")
	if err != nil {
		return err
	}
	if err := h.animals.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
