package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", models.NewNotFoundError("Recipe", 1), fiber.StatusNotFound},
		{"validation", models.NewValidationError("bad input"), fiber.StatusBadRequest},
		{"unauthorized", models.NewUnauthorizedError("not yours"), fiber.StatusForbidden},
		{"internal", models.NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapServiceError(tt.err))
		})
	}
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"recipeId", "recipe ID"},
		{"slug", "slug"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, humanizeParam(tt.param))
	}
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/items", func(c *fiber.Ctx) error {
		got = parsePagination(c, 6)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name     string
		url      string
		expected Pagination
	}{
		{"defaults", "/items", Pagination{Limit: 6, Offset: 0}},
		{"explicit", "/items?limit=12&offset=24", Pagination{Limit: 12, Offset: 24}},
		{"negative offset clamped", "/items?offset=-5", Pagination{Limit: 6, Offset: 0}},
		{"zero limit uses default", "/items?limit=0", Pagination{Limit: 6, Offset: 0}},
		{"limit capped", "/items?limit=5000", Pagination{Limit: 100, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			resp, _ := app.Test(req)
			_ = resp.Body.Close()
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPaginatedEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 6)
		return c.JSON(paginatedEnvelope(c, 20, p, []string{"a", "b"}))
	})

	t.Run("first page has next only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()

		var payload struct {
			Count    int64    `json:"count"`
			Next     *string  `json:"next"`
			Previous *string  `json:"previous"`
			Results  []string `json:"results"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, int64(20), payload.Count)
		assert.NotNil(t, payload.Next)
		assert.Contains(t, *payload.Next, "limit=6&offset=6")
		assert.Nil(t, payload.Previous)
		assert.Equal(t, []string{"a", "b"}, payload.Results)
	})

	t.Run("middle page has both links", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items?limit=6&offset=6", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()

		var payload struct {
			Next     *string `json:"next"`
			Previous *string `json:"previous"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		assert.NotNil(t, payload.Next)
		assert.Contains(t, *payload.Next, "offset=12")
		assert.NotNil(t, payload.Previous)
		assert.Contains(t, *payload.Previous, "offset=0")
	})

	t.Run("last page has previous only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items?limit=6&offset=18", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()

		var payload struct {
			Next     *string `json:"next"`
			Previous *string `json:"previous"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		assert.Nil(t, payload.Next)
		assert.NotNil(t, payload.Previous)
	})
}
