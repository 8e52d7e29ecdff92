package server

import (
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetIngredients handles GET /api/ingredients?name=<prefix>
func (s *Server) GetIngredients(c *fiber.Ctx) error {
	ingredients, err := s.ingredientRepo.Search(c.Context(), c.Query("name"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(ingredients)
}

// GetIngredient handles GET /api/ingredients/:id
func (s *Server) GetIngredient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ingredient, err := s.ingredientRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(ingredient)
}
