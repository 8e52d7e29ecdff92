package server

import (
	"time"

	"foodgram/internal/models"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Subscribe handles POST /api/users/:id/subscribe
func (s *Server) Subscribe(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	recipesLimit := c.QueryInt("recipes_limit", 0)

	entry, err := s.subService.Subscribe(ctx, userID, authorID, recipesLimit)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.publishUserEvent(authorID, EventSubscriberAdded, map[string]interface{}{
		"subscriber_id": userID,
		"created_at":    time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(subscribedAuthorJSON(*entry))
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.subService.Unsubscribe(ctx, userID, authorID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetSubscriptions handles GET /api/users/subscriptions
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 10)
	recipesLimit := c.QueryInt("recipes_limit", 0)

	entries, total, err := s.subService.ListSubscriptions(ctx, userID, page.Limit, page.Offset, recipesLimit)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	results := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		results = append(results, subscribedAuthorJSON(e))
	}
	return c.JSON(paginatedEnvelope(c, total, page, results))
}

// subscribedAuthorJSON shapes a subscription feed entry: the author's
// profile plus a capped recipe list and the full recipe count.
func subscribedAuthorJSON(e service.SubscribedAuthor) fiber.Map {
	return fiber.Map{
		"id":            e.User.ID,
		"username":      e.User.Username,
		"email":         e.User.Email,
		"first_name":    e.User.FirstName,
		"last_name":     e.User.LastName,
		"avatar":        e.User.Avatar,
		"is_subscribed": e.User.IsSubscribed,
		"recipes":       e.Recipes,
		"recipes_count": e.RecipesCount,
	}
}
