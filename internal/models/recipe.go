package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Recipe represents a published dish with its ingredient list and tags.
type Recipe struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;type:varchar(200)" json:"name"`
	Text        string `gorm:"type:text;not null" json:"text"`
	CookingTime int    `gorm:"not null" json:"cooking_time"`
	ImageURL    string `json:"image_url"`
	AuthorID    uint   `gorm:"not null;index" json:"author_id"`
	Author      User   `gorm:"foreignKey:AuthorID" json:"author"`

	Tags        []Tag              `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`

	// IsFavorited indicates whether the current requesting user favorited this recipe (computed)
	IsFavorited bool `gorm:"->" json:"is_favorited"`
	// IsInShoppingCart indicates whether this recipe is in the current user's cart (computed)
	IsInShoppingCart bool `gorm:"->" json:"is_in_shopping_cart"`
	// FavoritesCount is not persisted; computed at query time
	FavoritesCount int `gorm:"->" json:"favorites_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RecipeIngredient links a recipe to a catalog ingredient with a quantity.
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"id"`
	Amount       int        `gorm:"not null" json:"amount"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

// TableName specifies the table name for GORM
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// MarshalJSON flattens the preloaded catalog ingredient into the row, so
// recipe payloads list ingredients as {id, name, measurement_unit, amount}.
func (ri RecipeIngredient) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}{
		ID:              ri.IngredientID,
		Name:            ri.Ingredient.Name,
		MeasurementUnit: ri.Ingredient.MeasurementUnit,
		Amount:          ri.Amount,
	})
}

// RecipeSummary is the short recipe representation returned by the
// favorite and shopping-cart endpoints.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	CookingTime int    `json:"cooking_time"`
}

// Summary trims a recipe to its short representation.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		ImageURL:    r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

// IngredientAmount is one aggregated shopping-list line: the total amount
// of an ingredient summed across every recipe in a user's cart.
type IngredientAmount struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}
