package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookfarm/pantry-service/internal/repository"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := repository.NewMemoryStore()
	users, _ := newTestUserService(store)

	res, err := users.Register(context.Background(), RegisterInput{Name: "Kim", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.User.ID)
	assert.NotEmpty(t, res.Token.Token)
	assert.NotEqual(t, "p1", res.User.PasswordHash)

	stored, err := store.Users().GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, stored.ID)
	assert.Equal(t, "Kim", stored.Name)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	users, _ := newTestUserService(store)

	first, err := users.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	_, err = users.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p2"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	stored, err := store.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, stored.ID)

	_, err = users.Login(ctx, "a@x.com", "p2")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized), "second registration must not replace the first")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	users, _ := newTestUserService(store)
	registered := mustRegister(t, store, "a@x.com", "p1")

	res, err := users.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, res.User.ID)

	claims, err := users.TokenManager().ParseToken(res.Token.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "a@x.com", "p2"},
		{"password is case sensitive", "a@x.com", "P1"},
		{"email is case sensitive", "A@x.com", "p1"},
		{"unknown email", "b@x.com", "p1"},
		{"empty password", "a@x.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.Login(ctx, tc.email, tc.password)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, apperrors.CodeUnauthorized, domainErr.Code)
			assert.Equal(t, invalidCredentials, domainErr.Message)
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	users, rev := newTestUserService(store)
	mustRegister(t, store, "a@x.com", "p1")

	res, err := users.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	claims, err := users.TokenManager().ParseToken(res.Token.Token)
	require.NoError(t, err)

	require.NoError(t, users.Logout(ctx, claims))

	revoked, err := rev.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.True(t, apperrors.HasCode(users.Logout(ctx, nil), apperrors.CodeUnauthorized))
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	users, _ := newTestUserService(store)

	_, err := users.Register(ctx, RegisterInput{Email: "a@x.com", Password: strings.Repeat("비", 25)})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	_, err = store.Users().GetByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.Register(ctx, RegisterInput{Email: "a@x.com", Password: strings.Repeat("a", 72)})
	assert.NoError(t, err)
}
