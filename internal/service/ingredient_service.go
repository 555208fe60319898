package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cookfarm/pantry-service/internal/domain"
	"github.com/cookfarm/pantry-service/internal/events"
	"github.com/cookfarm/pantry-service/internal/repository"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

// IngredientService coordinates ingredient workflows.
type IngredientService struct {
	ingredients repository.IngredientRepository
	users       repository.UserRepository
	dispatcher  events.Dispatcher
}

// IngredientDependencies bundles collaborators for the ingredient service.
type IngredientDependencies struct {
	IngredientRepo repository.IngredientRepository
	UserRepo       repository.UserRepository
	Dispatcher     events.Dispatcher
}

// IngredientInput holds the replaceable ingredient fields.
type IngredientInput struct {
	Name       string
	Category   string
	AddedDate  domain.Date
	ExpiryDate domain.Date
	Memo       string
}

// NewIngredientService constructs the service.
func NewIngredientService(deps IngredientDependencies) *IngredientService {
	return &IngredientService{
		ingredients: deps.IngredientRepo,
		users:       deps.UserRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Add stores a new ingredient owned by userID.
func (s *IngredientService) Add(ctx context.Context, userID string, input IngredientInput) (*domain.Ingredient, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	ingredient := &domain.Ingredient{UserID: userID}
	input.applyTo(ingredient)

	if err := s.ingredients.Create(ctx, ingredient); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, userNotFound(userID)
		}
		return nil, fmt.Errorf("create ingredient: %w", err)
	}

	s.publish(ctx, events.EventIngredientAdded, ingredient)
	return ingredient, nil
}

// ListAll returns every stored ingredient.
func (s *IngredientService) ListAll(ctx context.Context) ([]domain.Ingredient, error) {
	items, err := s.ingredients.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return items, nil
}

// ListByUser returns the ingredients owned by userID.
func (s *IngredientService) ListByUser(ctx context.Context, userID string) ([]domain.Ingredient, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	items, err := s.ingredients.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user ingredients: %w", err)
	}
	return items, nil
}

// Delete removes the ingredient. Deleting an unknown id is a no-op.
func (s *IngredientService) Delete(ctx context.Context, id string) error {
	removed, err := s.ingredients.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if removed {
		s.publish(ctx, events.EventIngredientDeleted, &domain.Ingredient{ID: id})
	}
	return nil
}

// Update replaces the editable fields of an existing ingredient.
// Owner and identifier are preserved.
func (s *IngredientService) Update(ctx context.Context, id string, input IngredientInput) (*domain.Ingredient, error) {
	ingredient, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ingredientNotFound(id)
		}
		return nil, fmt.Errorf("load ingredient: %w", err)
	}

	input.applyTo(ingredient)
	if err := s.ingredients.Update(ctx, ingredient); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ingredientNotFound(id)
		}
		return nil, fmt.Errorf("update ingredient: %w", err)
	}

	s.publish(ctx, events.EventIngredientUpdated, ingredient)
	return ingredient, nil
}

// FindByName returns the earliest created ingredient with exactly this name.
func (s *IngredientService) FindByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	ingredient, err := s.ingredients.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ingredient", map[string]any{"name": name})
		}
		return nil, fmt.Errorf("find ingredient by name: %w", err)
	}
	return ingredient, nil
}

func (s *IngredientService) ensureUser(ctx context.Context, userID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound(userID)
		}
		return fmt.Errorf("load user: %w", err)
	}
	return nil
}

func (s *IngredientService) publish(ctx context.Context, eventType events.EventType, ingredient *domain.Ingredient) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type: eventType,
		Payload: events.IngredientPayload{
			IngredientID: ingredient.ID,
			UserID:       ingredient.UserID,
			Name:         ingredient.Name,
			ExpiryDate:   ingredient.ExpiryDate,
		},
	})
}

func (in IngredientInput) applyTo(ingredient *domain.Ingredient) {
	ingredient.Name = strings.TrimSpace(in.Name)
	ingredient.Category = strings.TrimSpace(in.Category)
	ingredient.AddedDate = in.AddedDate
	ingredient.ExpiryDate = in.ExpiryDate
	ingredient.Memo = in.Memo
}

func userNotFound(id string) error {
	return apperrors.NewNotFound("user", map[string]any{"user_id": id})
}

func ingredientNotFound(id string) error {
	return apperrors.NewNotFound("ingredient", map[string]any{"ingredient_id": id})
}
