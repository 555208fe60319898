package dto

import (
	"strings"

	"github.com/cookfarm/pantry-service/internal/domain"
)

// IngredientRequest is the body for adding or replacing an ingredient.
// The web client sends the note as "description"; "memo" is accepted too.
type IngredientRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Category    string  `json:"category" validate:"max=100"`
	AddedDate   string  `json:"addedDate" validate:"required,datetime=2006-01-02"`
	ExpiryDate  string  `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Memo        *string `json:"memo" validate:"omitempty,max=2000"`
}

// Normalize trims name and category so blank values fail validation.
func (r *IngredientRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
}

// MemoText returns the note, preferring description over memo.
func (r IngredientRequest) MemoText() string {
	switch {
	case r.Description != nil:
		return *r.Description
	case r.Memo != nil:
		return *r.Memo
	default:
		return ""
	}
}

// Dates parses the added and expiry dates. Call after validation.
func (r IngredientRequest) Dates() (added, expiry domain.Date, err error) {
	if added, err = domain.ParseDate(r.AddedDate); err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	if expiry, err = domain.ParseDate(r.ExpiryDate); err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	return added, expiry, nil
}

// IngredientResponse is the wire view of an ingredient.
type IngredientResponse struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	AddedDate   domain.Date `json:"addedDate"`
	ExpiryDate  domain.Date `json:"expiryDate"`
	Memo        string      `json:"memo"`
	Description string      `json:"description"`
}

// NewIngredientResponse maps a domain ingredient to its wire view.
func NewIngredientResponse(ingredient *domain.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:          ingredient.ID,
		UserID:      ingredient.UserID,
		Name:        ingredient.Name,
		Category:    ingredient.Category,
		AddedDate:   ingredient.AddedDate,
		ExpiryDate:  ingredient.ExpiryDate,
		Memo:        ingredient.Memo,
		Description: ingredient.Memo,
	}
}

// NewIngredientList maps a slice, never returning nil.
func NewIngredientList(items []domain.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(items))
	for i := range items {
		out = append(out, NewIngredientResponse(&items[i]))
	}
	return out
}

// NewCalendarMapResponse keys buckets by ISO date string.
func NewCalendarMapResponse(grouped map[domain.Date][]domain.Ingredient) map[string][]IngredientResponse {
	out := make(map[string][]IngredientResponse, len(grouped))
	for date, items := range grouped {
		out[date.String()] = NewIngredientList(items)
	}
	return out
}
