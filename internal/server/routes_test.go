package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/config"
	"foodgram/internal/models"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// newRoutedTestApp wires a Server through SetupRoutes so tests exercise the
// real route table, middleware ordering included, instead of registering
// handlers by hand.
func newRoutedTestApp(userRepo *MockUserRepository, recipeRepo *MockRecipeRepository) *fiber.App {
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	subRepo := new(MockSubscriptionRepository)

	s := &Server{
		config:         &config.Config{JWTSecret: "test_secret"},
		userRepo:       userRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		subRepo:        subRepo,
	}
	s.recipeService = service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, s.isAdminByUserID)
	s.userService = service.NewUserService(userRepo)
	s.subService = service.NewSubscriptionService(subRepo, userRepo, recipeRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func TestSetupRoutes_AnonymousReads(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	app := newRoutedTestApp(userRepo, recipeRepo)

	recipeRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
		Return(&models.Recipe{ID: 1, Name: "Pancakes"}, nil)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "chef"}, nil)

	t.Run("Recipe Detail", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/recipes/1", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("User Profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestSetupRoutes_AuthStillEnforced(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	app := newRoutedTestApp(userRepo, recipeRepo)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"Download Shopping Cart", http.MethodGet, "/api/recipes/download_shopping_cart"},
		{"My Profile", http.MethodGet, "/api/users/me"},
		{"Subscriptions", http.MethodGet, "/api/users/subscriptions"},
		{"Update Recipe", http.MethodPatch, "/api/recipes/1"},
		{"Subscribe", http.MethodPost, "/api/users/1/subscribe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
