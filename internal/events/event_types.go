package events

import (
	"time"

	"github.com/cookfarm/pantry-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIngredientAdded    EventType = "ingredient_added"
	EventIngredientUpdated  EventType = "ingredient_updated"
	EventIngredientDeleted  EventType = "ingredient_deleted"
	EventIngredientsExpired EventType = "ingredients_expired"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IngredientPayload describes an ingredient lifecycle change.
type IngredientPayload struct {
	IngredientID string      `json:"ingredient_id"`
	UserID       string      `json:"user_id,omitempty"`
	Name         string      `json:"name,omitempty"`
	ExpiryDate   domain.Date `json:"expiry_date"`
}

// IngredientsExpiredPayload summarizes an expiry sweep.
type IngredientsExpiredPayload struct {
	AsOf  domain.Date `json:"as_of"`
	Count int         `json:"count"`
}
