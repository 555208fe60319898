package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cookfarm/pantry-service/internal/domain"
)

// MemoryStore keeps users and ingredients in process. It enforces the same
// constraints as the Postgres schema: unique emails and existing owners.
type MemoryStore struct {
	mu          sync.RWMutex
	now         func() time.Time
	users       map[string]domain.User
	emails      map[string]string
	ingredients map[string]domain.Ingredient
	order       []string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:         time.Now,
		users:       make(map[string]domain.User),
		emails:      make(map[string]string),
		ingredients: make(map[string]domain.Ingredient),
	}
}

// Users exposes the store through the UserRepository interface.
func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

// Ingredients exposes the store through the IngredientRepository interface.
func (s *MemoryStore) Ingredients() IngredientRepository {
	return memoryIngredients{s}
}

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, exists := m.s.emails[user.Email]; exists {
		return ErrDuplicateEmail
	}
	user.ID = uuid.NewString()
	user.CreatedAt = m.s.now()
	m.s.users[user.ID] = *user
	m.s.emails[user.Email] = user.ID
	return nil
}

func (m memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	user, ok := m.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	id, ok := m.s.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := m.s.users[id]
	return &user, nil
}

type memoryIngredients struct{ s *MemoryStore }

func (m memoryIngredients) Create(_ context.Context, ingredient *domain.Ingredient) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.users[ingredient.UserID]; !ok {
		return ErrNotFound
	}
	now := m.s.now()
	ingredient.ID = uuid.NewString()
	ingredient.CreatedAt = now
	ingredient.UpdatedAt = now
	m.s.ingredients[ingredient.ID] = *ingredient
	m.s.order = append(m.s.order, ingredient.ID)
	return nil
}

func (m memoryIngredients) Update(_ context.Context, ingredient *domain.Ingredient) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	stored, ok := m.s.ingredients[ingredient.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Name = ingredient.Name
	stored.Category = ingredient.Category
	stored.AddedDate = ingredient.AddedDate
	stored.ExpiryDate = ingredient.ExpiryDate
	stored.Memo = ingredient.Memo
	stored.UpdatedAt = m.s.now()
	m.s.ingredients[stored.ID] = stored
	ingredient.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m memoryIngredients) GetByID(_ context.Context, id string) (*domain.Ingredient, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	ingredient, ok := m.s.ingredients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ingredient, nil
}

func (m memoryIngredients) GetByName(_ context.Context, name string) (*domain.Ingredient, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, id := range m.s.order {
		if ingredient := m.s.ingredients[id]; ingredient.Name == name {
			return &ingredient, nil
		}
	}
	return nil, ErrNotFound
}

func (m memoryIngredients) ListAll(_ context.Context) ([]domain.Ingredient, error) {
	return m.filter(func(domain.Ingredient) bool { return true }), nil
}

func (m memoryIngredients) ListByUser(_ context.Context, userID string) ([]domain.Ingredient, error) {
	return m.filter(func(i domain.Ingredient) bool { return i.UserID == userID }), nil
}

func (m memoryIngredients) Delete(_ context.Context, id string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.ingredients[id]; !ok {
		return false, nil
	}
	delete(m.s.ingredients, id)
	for i, existing := range m.s.order {
		if existing == id {
			m.s.order = append(m.s.order[:i], m.s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m memoryIngredients) filter(keep func(domain.Ingredient) bool) []domain.Ingredient {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	result := []domain.Ingredient{}
	for _, id := range m.s.order {
		if ingredient := m.s.ingredients[id]; keep(ingredient) {
			result = append(result, ingredient)
		}
	}
	return result
}
