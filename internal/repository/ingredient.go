package repository

import (
	"context"
	"errors"
	"strings"

	"foodgram/internal/cache"
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// IngredientRepository defines persistence operations for the ingredient catalog.
type IngredientRepository interface {
	Search(ctx context.Context, namePrefix string) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id uint) (*models.Ingredient, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error)
	CreateBatch(ctx context.Context, ingredients []models.Ingredient) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository returns a new IngredientRepository implementation.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// Search returns catalog entries whose name starts with namePrefix
// (case-insensitive); the empty prefix returns the whole catalog.
// Results are cache-aside through Redis keyed by the prefix.
func (r *ingredientRepository) Search(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	prefix := strings.ToLower(strings.TrimSpace(namePrefix))

	var ingredients []models.Ingredient
	err := cache.Aside(ctx, cache.IngredientSearchKey(prefix), &ingredients, cache.IngredientTTL, func() error {
		q := r.db.WithContext(ctx).Order("name")
		if prefix != "" {
			q = q.Where("LOWER(name) LIKE ?", prefix+"%")
		}
		if err := q.Find(&ingredients).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ingredient", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredients, nil
}

// CreateBatch inserts catalog entries in chunks; used by fixture imports.
func (r *ingredientRepository) CreateBatch(ctx context.Context, ingredients []models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&ingredients, 500).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateIngredients(ctx)
	return nil
}
