package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFavoriteRecipe(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	app, s := newRecipeTestServer(recipeRepo, tagRepo, ingredientRepo)

	app.Post("/recipes/:id/favorite", s.FavoriteRecipe)

	recipeRepo.On("GetByID", mock.Anything, uint(1), uint(42)).
		Return(&models.Recipe{ID: 1, Name: "Pancakes", ImageURL: "/img/1.png", CookingTime: 15, AuthorID: 42}, nil)
	recipeRepo.On("Favorite", mock.Anything, uint(42), uint(1)).Return(nil)
	recipeRepo.On("GetByID", mock.Anything, uint(2), uint(42)).
		Return(&models.Recipe{ID: 2, Name: "Borscht", AuthorID: 42}, nil)
	recipeRepo.On("Favorite", mock.Anything, uint(42), uint(2)).
		Return(models.NewValidationError("Recipe is already in favorites"))
	recipeRepo.On("GetByID", mock.Anything, uint(999), uint(42)).
		Return(nil, models.NewNotFoundError("Recipe", 999))

	t.Run("Success Returns Summary", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recipes/1/favorite", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var summary models.RecipeSummary
		_ = json.NewDecoder(resp.Body).Decode(&summary)
		assert.Equal(t, uint(1), summary.ID)
		assert.Equal(t, "Pancakes", summary.Name)
		assert.Equal(t, "/img/1.png", summary.ImageURL)
		assert.Equal(t, 15, summary.CookingTime)
	})

	t.Run("Already Favorited", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recipes/2/favorite", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Recipe", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recipes/999/favorite", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUnfavoriteRecipe(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	app, s := newRecipeTestServer(recipeRepo, tagRepo, ingredientRepo)

	app.Delete("/recipes/:id/favorite", s.UnfavoriteRecipe)

	recipeRepo.On("GetByID", mock.Anything, uint(1), uint(42)).
		Return(&models.Recipe{ID: 1, AuthorID: 7}, nil)
	recipeRepo.On("Unfavorite", mock.Anything, uint(42), uint(1)).Return(nil)
	recipeRepo.On("GetByID", mock.Anything, uint(2), uint(42)).
		Return(&models.Recipe{ID: 2, AuthorID: 7}, nil)
	recipeRepo.On("Unfavorite", mock.Anything, uint(42), uint(2)).
		Return(models.NewValidationError("Recipe is not in favorites"))

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/recipes/1/favorite", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("Not In Favorites", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/recipes/2/favorite", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestShoppingCart(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	app, s := newRecipeTestServer(recipeRepo, tagRepo, ingredientRepo)

	app.Post("/recipes/:id/shopping_cart", s.AddToShoppingCart)
	app.Delete("/recipes/:id/shopping_cart", s.RemoveFromShoppingCart)

	recipeRepo.On("GetByID", mock.Anything, uint(1), uint(42)).
		Return(&models.Recipe{ID: 1, Name: "Pancakes", CookingTime: 15}, nil)
	recipeRepo.On("AddToCart", mock.Anything, uint(42), uint(1)).Return(nil)
	recipeRepo.On("RemoveFromCart", mock.Anything, uint(42), uint(1)).
		Return(models.NewValidationError("Recipe is not in the shopping cart"))

	t.Run("Add Returns Summary", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recipes/1/shopping_cart", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var summary models.RecipeSummary
		_ = json.NewDecoder(resp.Body).Decode(&summary)
		assert.Equal(t, uint(1), summary.ID)
		assert.Equal(t, "Pancakes", summary.Name)
	})

	t.Run("Remove Not In Cart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/recipes/1/shopping_cart", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDownloadShoppingCart(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	app, s := newRecipeTestServer(recipeRepo, tagRepo, ingredientRepo)

	app.Get("/recipes/download_shopping_cart", s.DownloadShoppingCart)

	recipeRepo.On("CartIngredients", mock.Anything, uint(42)).
		Return([]models.IngredientAmount{
			{Name: "Flour", MeasurementUnit: "g", Total: 300},
			{Name: "Milk", MeasurementUnit: "ml", Total: 500},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	disposition := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="shopping_cart_`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.txt"`), disposition)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Flour (g) — 300")
	assert.Contains(t, string(body), "Milk (ml) — 500")
}

func TestDownloadShoppingCart_EmptyCart(t *testing.T) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	app, s := newRecipeTestServer(recipeRepo, tagRepo, ingredientRepo)

	app.Get("/recipes/download_shopping_cart", s.DownloadShoppingCart)

	recipeRepo.On("CartIngredients", mock.Anything, uint(42)).
		Return([]models.IngredientAmount{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Shopping list (")
}
