package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cookfarm/pantry-service/internal/domain"
	"github.com/cookfarm/pantry-service/internal/repository"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("p1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "p1", hash)

	assert.NoError(t, ComparePassword(hash, "p1"))
	assert.Error(t, ComparePassword(hash, "P1"))

	other, err := HashPassword("p1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	issued, err := tm.GenerateToken("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := tm.ParseToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, issued.ID, claims.ID)
	assert.InDelta(t, (5 * time.Minute).Seconds(), tm.Remaining(claims).Seconds(), 2)

	_, err = NewTokenManager("other-secret", 5).ParseToken(issued.Token)
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	issued, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.ParseToken(issued.Token)
	assert.Error(t, err)
}

func TestMemoryRevocations(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	rev := NewMemoryRevocations()
	rev.now = func() time.Time { return now }

	require.NoError(t, rev.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, rev.Revoke(ctx, "jti-2", 0))

	revoked, err := rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = rev.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

type authFixture struct {
	app   *fiber.App
	tm    *TokenManager
	rev   *MemoryRevocations
	owner *domain.User
}

func newAuthFixture(t *testing.T, required bool) authFixture {
	t.Helper()
	store := repository.NewMemoryStore()
	owner := &domain.User{Email: "a@x.com", PasswordHash: "x"}
	require.NoError(t, store.Users().Create(context.Background(), owner))

	tm := NewTokenManager("secret", 5)
	rev := NewMemoryRevocations()
	mw := NewAuthMiddleware(tm, rev, store.Users())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/users/:userId/things", mw.For(required), RequireOwner("userId"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/me", mw.Handle, RequirePrincipal(), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.User.Email)
	})
	return authFixture{app: app, tm: tm, rev: rev, owner: owner}
}

func (f authFixture) get(t *testing.T, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestMiddlewareOptional(t *testing.T) {
	f := newAuthFixture(t, false)
	issued, err := f.tm.GenerateToken(f.owner.ID)
	require.NoError(t, err)

	assert.Equal(t, 200, f.get(t, "/users/"+f.owner.ID+"/things", ""))
	assert.Equal(t, 200, f.get(t, "/users/"+f.owner.ID+"/things", issued.Token))
	assert.Equal(t, 403, f.get(t, "/users/someone-else/things", issued.Token))
	assert.Equal(t, 401, f.get(t, "/users/"+f.owner.ID+"/things", "garbage"))
}

func TestMiddlewareRequired(t *testing.T) {
	f := newAuthFixture(t, true)
	issued, err := f.tm.GenerateToken(f.owner.ID)
	require.NoError(t, err)

	assert.Equal(t, 401, f.get(t, "/users/"+f.owner.ID+"/things", ""))
	assert.Equal(t, 200, f.get(t, "/users/"+f.owner.ID+"/things", issued.Token))
	assert.Equal(t, 200, f.get(t, "/me", issued.Token))

	require.NoError(t, f.rev.Revoke(context.Background(), issued.ID, time.Minute))
	assert.Equal(t, 401, f.get(t, "/me", issued.Token))
}

func TestMiddlewareRejectsTokenForUnknownUser(t *testing.T) {
	f := newAuthFixture(t, true)
	issued, err := f.tm.GenerateToken("deleted-user")
	require.NoError(t, err)

	assert.Equal(t, 401, f.get(t, "/me", issued.Token))
}
