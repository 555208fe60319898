package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cookfarm/pantry-service/internal/domain"
	"github.com/cookfarm/pantry-service/internal/repository"
)

// CalendarView derives date-indexed, read-only views over the full
// ingredient collection. Every call rescans storage.
type CalendarView struct {
	ingredients repository.IngredientRepository
	now         func() time.Time
}

// CalendarOption customizes a CalendarView.
type CalendarOption func(*CalendarView)

// WithClock overrides the clock used to determine today's date.
func WithClock(now func() time.Time) CalendarOption {
	return func(v *CalendarView) {
		if now != nil {
			v.now = now
		}
	}
}

// NewCalendarView constructs the view.
func NewCalendarView(ingredients repository.IngredientRepository, opts ...CalendarOption) *CalendarView {
	v := &CalendarView{ingredients: ingredients, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Today returns the current calendar date in the host's local time zone.
func (v *CalendarView) Today() domain.Date {
	return domain.DateOf(v.now().Local())
}

// IngredientsExpiringOn returns the ingredients whose expiry date is exactly date.
func (v *CalendarView) IngredientsExpiringOn(ctx context.Context, date domain.Date) ([]domain.Ingredient, error) {
	return v.filter(ctx, func(i domain.Ingredient) bool { return i.ExpiresOn(date) })
}

// ExpiredIngredients returns the ingredients that expired strictly before today.
func (v *CalendarView) ExpiredIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	today := v.Today()
	return v.filter(ctx, func(i domain.Ingredient) bool { return i.ExpiredAsOf(today) })
}

// CalendarMap groups every ingredient by expiry date. Each bucket is non-empty
// and keeps storage order.
func (v *CalendarView) CalendarMap(ctx context.Context) (map[domain.Date][]domain.Ingredient, error) {
	all, err := v.ingredients.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	grouped := make(map[domain.Date][]domain.Ingredient)
	for _, ingredient := range all {
		grouped[ingredient.ExpiryDate] = append(grouped[ingredient.ExpiryDate], ingredient)
	}
	return grouped, nil
}

func (v *CalendarView) filter(ctx context.Context, keep func(domain.Ingredient) bool) ([]domain.Ingredient, error) {
	all, err := v.ingredients.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	result := make([]domain.Ingredient, 0, len(all))
	for _, ingredient := range all {
		if keep(ingredient) {
			result = append(result, ingredient)
		}
	}
	return result, nil
}
