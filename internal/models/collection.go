package models

import "time"

// Favorite bookmarks a recipe for a user. The pair is unique.
type Favorite struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"user_id"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"recipe_id"`

	CreatedAt time.Time `json:"created_at"`

	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

// ShoppingCartItem puts a recipe on a user's shopping list. The pair is unique.
type ShoppingCartItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_cart_pair" json:"user_id"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_cart_pair" json:"recipe_id"`

	CreatedAt time.Time `json:"created_at"`

	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

// TableName specifies the table name for GORM
func (ShoppingCartItem) TableName() string {
	return "shopping_cart_items"
}
