package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cookfarm/pantry-service/internal/auth"
	"github.com/cookfarm/pantry-service/internal/config"
	"github.com/cookfarm/pantry-service/internal/domain"
	"github.com/cookfarm/pantry-service/internal/events"
	"github.com/cookfarm/pantry-service/internal/repository"
)

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (r *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, event)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordingDispatcher) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.published))
	for _, e := range r.published {
		out = append(out, e.Type)
	}
	return out
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            bcrypt.MinCost,
	}
}

func newTestUserService(store *repository.MemoryStore) (*UserService, *auth.MemoryRevocations) {
	rev := auth.NewMemoryRevocations()
	return NewUserService(testAuthConfig(), UserDependencies{UserRepo: store.Users(), Revocations: rev}), rev
}

func mustRegister(t *testing.T, store *repository.MemoryStore, email, password string) *domain.User {
	t.Helper()
	users, _ := newTestUserService(store)
	res, err := users.Register(context.Background(), RegisterInput{Name: "tester", Email: email, Password: password})
	require.NoError(t, err)
	return res.User
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}
