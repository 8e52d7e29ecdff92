package server

import (
	"fmt"
	"time"

	"foodgram/internal/models"
	"foodgram/internal/observability"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// FavoriteRecipe handles POST /api/recipes/:id/favorite
func (s *Server) FavoriteRecipe(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.recipeService.FavoriteRecipe(ctx, userID, recipeID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	if recipe, getErr := s.recipeRepo.GetByID(ctx, recipeID, userID); getErr == nil && recipe.AuthorID != userID {
		s.publishUserEvent(recipe.AuthorID, EventRecipeFavorited, map[string]interface{}{
			"recipe_id":  recipeID,
			"user_id":    userID,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(summary)
}

// UnfavoriteRecipe handles DELETE /api/recipes/:id/favorite
func (s *Server) UnfavoriteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.UnfavoriteRecipe(c.Context(), userID, recipeID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddToShoppingCart handles POST /api/recipes/:id/shopping_cart
func (s *Server) AddToShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.recipeService.AddToCart(c.Context(), userID, recipeID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(summary)
}

// RemoveFromShoppingCart handles DELETE /api/recipes/:id/shopping_cart
func (s *Server) RemoveFromShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.RemoveFromCart(c.Context(), userID, recipeID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart.
// It returns the aggregated cart as a plain-text attachment.
func (s *Server) DownloadShoppingCart(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	amounts, err := s.recipeService.ShoppingList(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	now := time.Now()
	body := service.RenderShoppingList(amounts, now)
	filename := service.ShoppingListFilename(now)

	observability.ShoppingListDownloads.Inc()

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(body)
}
