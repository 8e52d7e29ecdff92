package server

import (
	"context"
	"encoding/json"
	"log"

	"foodgram/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventRecipeCreated   = "recipe_created"
	EventRecipeFavorited = "recipe_favorited"
	EventSubscriberAdded = "subscriber_added"
)

func encodeEvent(eventType string, payload map[string]interface{}) (string, bool) {
	eventJSON, err := json.Marshal(map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return "", false
	}
	observability.NotificationEventsTotal.WithLabelValues(eventType).Inc()
	return string(eventJSON), true
}

func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	message, ok := encodeEvent(eventType, payload)
	if !ok {
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
}

func (s *Server) publishBroadcastEvent(eventType string, payload map[string]interface{}) {
	message, ok := encodeEvent(eventType, payload)
	if !ok {
		return
	}
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
	}
}
