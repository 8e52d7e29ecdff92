package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix             = "user:%d"
	RecipeKeyPrefix           = "recipe:%d"
	TagsKeyName               = "tags:all"
	IngredientSearchKeyPrefix = "ingredients:q:%s"
)

const (
	UserTTL       = 5 * time.Minute
	RecipeTTL     = 10 * time.Minute
	TagTTL        = 30 * time.Minute
	IngredientTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

func TagsKey() string {
	return TagsKeyName
}

// IngredientSearchKey keys an ingredient catalog lookup by its name prefix;
// the empty prefix keys the full catalog.
func IngredientSearchKey(prefix string) string {
	return fmt.Sprintf(IngredientSearchKeyPrefix, prefix)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
}

func InvalidateTags(ctx context.Context) {
	Invalidate(ctx, TagsKey())
}

// InvalidateIngredients drops every cached catalog lookup. Called after
// fixture imports; the catalog otherwise never changes at runtime.
func InvalidateIngredients(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "ingredients:q:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
