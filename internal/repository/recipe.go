package repository

import (
	"context"
	"errors"

	"foodgram/internal/cache"
	"foodgram/internal/models"
	"foodgram/internal/observability"

	"gorm.io/gorm"
)

// RecipeFilter narrows a recipe listing. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID         uint
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// RecipeRepository defines persistence operations for recipes and the
// per-user favorite and shopping-cart collections attached to them.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter, limit, offset int, currentUserID uint) ([]models.Recipe, int64, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uint) error
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)

	Favorite(ctx context.Context, userID, recipeID uint) error
	Unfavorite(ctx context.Context, userID, recipeID uint) error
	AddToCart(ctx context.Context, userID, recipeID uint) error
	RemoveFromCart(ctx context.Context, userID, recipeID uint) error
	CartIngredients(ctx context.Context, userID uint) ([]models.IngredientAmount, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create persists a recipe with its ingredient rows and tag links in one
// transaction. recipe.Ingredients and recipe.Tags must be pre-validated.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(recipe).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Recipe contains a duplicate ingredient")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	defer observability.TrackQuery("get", "recipes")()

	var recipe models.Recipe
	q := applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient")

	if err := q.First(&recipe, "recipes.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

// List returns recipes newest first along with the total count matching
// the filter, so handlers can build paginated envelopes.
func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, limit, offset int, currentUserID uint) ([]models.Recipe, int64, error) {
	defer observability.TrackQuery("list", "recipes")()

	base := r.db.WithContext(ctx).Model(&models.Recipe{})
	base = applyRecipeFilter(base, filter, currentUserID)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("recipes.id").Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var recipes []models.Recipe
	q := applyRecipeDetails(base.Session(&gorm.Session{}), currentUserID).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Group("recipes.id").
		Order("recipes.created_at DESC, recipes.id DESC").
		Limit(limit).
		Offset(offset)

	if err := q.Find(&recipes).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return recipes, total, nil
}

// Update replaces the recipe's scalar fields, tag links and ingredient
// rows in one transaction.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(recipe.Tags); err != nil {
			return err
		}
		return tx.Omit("Author", "Tags").Save(recipe).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Recipe contains a duplicate ingredient")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipe.ID)
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Recipe{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, id)
	return nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// Favorite bookmarks a recipe. Adding a recipe twice is a validation error,
// enforced by the unique (user_id, recipe_id) index.
func (r *recipeRepository) Favorite(ctx context.Context, userID, recipeID uint) error {
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Recipe is already in favorites")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipeID)
	return nil
}

func (r *recipeRepository) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewValidationError("Recipe is not in favorites")
	}
	cache.InvalidateRecipe(ctx, recipeID)
	return nil
}

func (r *recipeRepository) AddToCart(ctx context.Context, userID, recipeID uint) error {
	item := models.ShoppingCartItem{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Recipe is already in the shopping cart")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCartItem{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewValidationError("Recipe is not in the shopping cart")
	}
	return nil
}

// CartIngredients aggregates the shopping list for a user: amounts of the
// same catalog ingredient are summed across every recipe in the cart.
func (r *recipeRepository) CartIngredients(ctx context.Context, userID uint) ([]models.IngredientAmount, error) {
	defer observability.TrackQuery("aggregate", "shopping_cart_items")()

	var amounts []models.IngredientAmount
	err := r.db.WithContext(ctx).
		Table("shopping_cart_items").
		Select("ingredients.name as name, ingredients.measurement_unit as measurement_unit, SUM(recipe_ingredients.amount) as total").
		Joins("JOIN recipes ON recipes.id = shopping_cart_items.recipe_id AND recipes.deleted_at IS NULL").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_cart_items.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&amounts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return amounts, nil
}

// applyRecipeDetails adds subqueries computing favorites_count and, for an
// authenticated user, is_favorited and is_in_shopping_cart in a single query.
func applyRecipeDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select(
			"recipes.*, "+
				"(SELECT COUNT(*) FROM favorites WHERE favorites.recipe_id = recipes.id) as favorites_count, "+
				"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) as is_favorited, "+
				"EXISTS(SELECT 1 FROM shopping_cart_items WHERE shopping_cart_items.recipe_id = recipes.id AND shopping_cart_items.user_id = ?) as is_in_shopping_cart",
			currentUserID, currentUserID,
		)
	}
	return db.Select(
		"recipes.*, " +
			"(SELECT COUNT(*) FROM favorites WHERE favorites.recipe_id = recipes.id) as favorites_count, " +
			"false as is_favorited, false as is_in_shopping_cart",
	)
}

func applyRecipeFilter(db *gorm.DB, filter RecipeFilter, currentUserID uint) *gorm.DB {
	if filter.AuthorID != 0 {
		db = db.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		db = db.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}
	if filter.IsFavorited && currentUserID != 0 {
		db = db.Where("EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)", currentUserID)
	}
	if filter.IsInShoppingCart && currentUserID != 0 {
		db = db.Where("EXISTS(SELECT 1 FROM shopping_cart_items WHERE shopping_cart_items.recipe_id = recipes.id AND shopping_cart_items.user_id = ?)", currentUserID)
	}
	return db
}
