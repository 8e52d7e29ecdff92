package server

import (
	"time"

	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

type recipePayload struct {
	Name        string                          `json:"name"`
	Text        string                          `json:"text"`
	ImageURL    string                          `json:"image_url,omitempty"`
	CookingTime int                             `json:"cooking_time"`
	Tags        []uint                          `json:"tags"`
	Ingredients []service.RecipeIngredientInput `json:"ingredients"`
}

// CreateRecipe handles POST /api/recipes
// @Summary Create recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body recipePayload true "Recipe"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} models.ErrorResponse
// @Router /recipes [post]
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req recipePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(ctx, service.CreateRecipeInput{
		AuthorID:    userID,
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.publishBroadcastEvent(EventRecipeCreated, map[string]interface{}{
		"recipe_id":  recipe.ID,
		"author_id":  recipe.AuthorID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// GetRecipes handles GET /api/recipes with optional filters: author, tags
// (slugs, repeatable), is_favorited and is_in_shopping_cart.
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 6)
	userID, _ := s.optionalUserID(c)

	filter := repository.RecipeFilter{
		AuthorID:         uint(c.QueryInt("author", 0)),
		IsFavorited:      c.QueryBool("is_favorited", false),
		IsInShoppingCart: c.QueryBool("is_in_shopping_cart", false),
	}
	for _, slug := range c.Request().URI().QueryArgs().PeekMulti("tags") {
		if len(slug) > 0 {
			filter.TagSlugs = append(filter.TagSlugs, string(slug))
		}
	}

	recipes, total, err := s.recipeService.ListRecipes(ctx, service.ListRecipesInput{
		Filter:        filter,
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(paginatedEnvelope(c, total, page, recipes))
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	recipe, err := s.recipeService.GetRecipe(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(recipe)
}

// UpdateRecipe handles PATCH/PUT /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req recipePayload
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(ctx, service.UpdateRecipeInput{
		UserID:      userID,
		RecipeID:    recipeID,
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.DeleteRecipe(c.Context(), userID, recipeID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
