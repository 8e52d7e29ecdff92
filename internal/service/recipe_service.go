// Package service contains the business logic of the application.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// RecipeService provides recipe business logic: creation, editing,
// favorites, the shopping cart and the aggregated shopping list.
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	isAdmin        func(ctx context.Context, userID uint) (bool, error)
}

// RecipeIngredientInput is one ingredient line of a create/update payload.
type RecipeIngredientInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

type CreateRecipeInput struct {
	AuthorID    uint
	Name        string
	Text        string
	ImageURL    string
	CookingTime int
	TagIDs      []uint
	Ingredients []RecipeIngredientInput
}

type UpdateRecipeInput struct {
	UserID      uint
	RecipeID    uint
	Name        string
	Text        string
	ImageURL    string
	CookingTime int
	TagIDs      []uint
	Ingredients []RecipeIngredientInput
}

type ListRecipesInput struct {
	Filter        repository.RecipeFilter
	Limit         int
	Offset        int
	CurrentUserID uint
}

// NewRecipeService returns a new RecipeService.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		isAdmin:        isAdmin,
	}
}

const (
	maxRecipeNameLen = 200
	maxRecipeTextLen = 10000
)

func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	tags, rows, err := s.validateRecipePayload(ctx, in.Name, in.Text, in.CookingTime, in.TagIDs, in.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:        strings.TrimSpace(in.Name),
		Text:        in.Text,
		ImageURL:    in.ImageURL,
		CookingTime: in.CookingTime,
		AuthorID:    in.AuthorID,
		Tags:        tags,
		Ingredients: rows,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetByID(ctx, recipe.ID, in.AuthorID)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id, currentUserID)
}

func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]models.Recipe, int64, error) {
	return s.recipeRepo.List(ctx, in.Filter, in.Limit, in.Offset, in.CurrentUserID)
}

// UpdateRecipe replaces the recipe's fields, tags and ingredient list.
// Only the author or an admin may update a recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAuthorOrAdmin(ctx, recipe, in.UserID, "update"); err != nil {
		return nil, err
	}

	tags, rows, err := s.validateRecipePayload(ctx, in.Name, in.Text, in.CookingTime, in.TagIDs, in.Ingredients)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].RecipeID = recipe.ID
	}

	recipe.Name = strings.TrimSpace(in.Name)
	recipe.Text = in.Text
	recipe.CookingTime = in.CookingTime
	if in.ImageURL != "" {
		recipe.ImageURL = in.ImageURL
	}
	recipe.Tags = tags
	recipe.Ingredients = rows

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetByID(ctx, recipe.ID, in.UserID)
}

// DeleteRecipe removes a recipe. Only the author or an admin may delete it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if err := s.requireAuthorOrAdmin(ctx, recipe, userID, "delete"); err != nil {
		return err
	}
	return s.recipeRepo.Delete(ctx, recipeID)
}

// FavoriteRecipe bookmarks a recipe and returns its short representation.
func (s *RecipeService) FavoriteRecipe(ctx context.Context, userID, recipeID uint) (*models.RecipeSummary, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Favorite(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	summary := recipe.Summary()
	return &summary, nil
}

func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepo.Unfavorite(ctx, userID, recipeID)
}

// AddToCart puts a recipe on the user's shopping list and returns its
// short representation.
func (s *RecipeService) AddToCart(ctx context.Context, userID, recipeID uint) (*models.RecipeSummary, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.AddToCart(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	summary := recipe.Summary()
	return &summary, nil
}

func (s *RecipeService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepo.RemoveFromCart(ctx, userID, recipeID)
}

// ShoppingList aggregates the user's cart into summed ingredient lines.
func (s *RecipeService) ShoppingList(ctx context.Context, userID uint) ([]models.IngredientAmount, error) {
	return s.recipeRepo.CartIngredients(ctx, userID)
}

// RenderShoppingList formats aggregated cart lines as plain text, one
// ingredient per line.
func RenderShoppingList(amounts []models.IngredientAmount, now time.Time) string {
	var b strings.Builder
	b.WriteString("Shopping list (" + now.Format("2006-01-02 15:04") + ")\n\n")
	for _, a := range amounts {
		fmt.Fprintf(&b, "%s (%s) — %d\n", a.Name, a.MeasurementUnit, a.Total)
	}
	return b.String()
}

// ShoppingListFilename names the downloaded attachment.
func ShoppingListFilename(now time.Time) string {
	return fmt.Sprintf("shopping_cart_%d.txt", now.Unix())
}

func (s *RecipeService) requireAuthorOrAdmin(ctx context.Context, recipe *models.Recipe, userID uint, action string) error {
	if recipe.AuthorID == userID {
		return nil
	}
	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if admin {
			return nil
		}
	}
	return models.NewUnauthorizedError("You can only " + action + " your own recipes")
}

// validateRecipePayload checks the shared create/update invariants and
// resolves tag and ingredient references against the catalog.
func (s *RecipeService) validateRecipePayload(
	ctx context.Context,
	name, text string,
	cookingTime int,
	tagIDs []uint,
	ingredients []RecipeIngredientInput,
) ([]models.Tag, []models.RecipeIngredient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxRecipeNameLen {
		return nil, nil, models.NewValidationError("Name too long (max 200 characters)")
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxRecipeTextLen {
		return nil, nil, models.NewValidationError("Text too long (max 10000 characters)")
	}
	if cookingTime < 1 {
		return nil, nil, models.NewValidationError("Cooking time must be at least 1 minute")
	}

	if len(tagIDs) == 0 {
		return nil, nil, models.NewValidationError("At least one tag is required")
	}
	seenTags := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seenTags[id] {
			return nil, nil, models.NewValidationError("Tags must not repeat")
		}
		seenTags[id] = true
	}
	tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, models.NewValidationError("One or more tags do not exist")
	}

	if len(ingredients) == 0 {
		return nil, nil, models.NewValidationError("At least one ingredient is required")
	}
	ids := make([]uint, 0, len(ingredients))
	seenIngredients := make(map[uint]bool, len(ingredients))
	for _, ing := range ingredients {
		if seenIngredients[ing.ID] {
			return nil, nil, models.NewValidationError("Ingredients must not repeat")
		}
		seenIngredients[ing.ID] = true
		if ing.Amount < 1 {
			return nil, nil, models.NewValidationError("Ingredient amount must be at least 1")
		}
		ids = append(ids, ing.ID)
	}
	existing, err := s.ingredientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) != len(ids) {
		return nil, nil, models.NewValidationError("One or more ingredients do not exist")
	}

	rows := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		rows = append(rows, models.RecipeIngredient{
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		})
	}
	return tags, rows, nil
}
