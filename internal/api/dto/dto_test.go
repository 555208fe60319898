package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookfarm/pantry-service/internal/domain"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

func TestValidatorReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Struct(IngredientRequest{ExpiryDate: "10-01-2024"})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "is required", domainErr.Details["name"])
	assert.Equal(t, "is required", domainErr.Details["addedDate"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", domainErr.Details["expiryDate"])
}

func TestValidatorAcceptsValidIngredient(t *testing.T) {
	req := IngredientRequest{Name: "Milk", AddedDate: "2024-01-01", ExpiryDate: "2024-01-10"}
	require.NoError(t, NewValidator().Struct(req))

	added, expiry, err := req.Dates()
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.January, 1), added)
	assert.Equal(t, domain.NewDate(2024, time.January, 10), expiry)
}

func TestRegisterValidation(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Struct(UserRegisterRequest{Email: "a@x.com", Password: "p1"}))

	err := v.Struct(UserRegisterRequest{Email: "not-an-email"})
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "must be a valid email address", domainErr.Details["email"])
	assert.Equal(t, "is required", domainErr.Details["password"])
}

func TestMemoTextPrefersDescription(t *testing.T) {
	var req IngredientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description":"from form","memo":"legacy"}`), &req))
	assert.Equal(t, "from form", req.MemoText())

	req = IngredientRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"memo":"legacy"}`), &req))
	assert.Equal(t, "legacy", req.MemoText())

	assert.Equal(t, "", IngredientRequest{}.MemoText())
}

func TestCalendarMapResponseKeys(t *testing.T) {
	day := domain.NewDate(2024, time.January, 10)
	grouped := map[domain.Date][]domain.Ingredient{
		day: {{ID: "1", Name: "Milk", ExpiryDate: day, Memo: "note"}},
	}

	raw, err := json.Marshal(NewCalendarMapResponse(grouped))
	require.NoError(t, err)
	assert.JSONEq(t, `{"2024-01-10":[{"id":"1","userId":"","name":"Milk","category":"","addedDate":"","expiryDate":"2024-01-10","memo":"note","description":"note"}]}`, string(raw))
}

func TestRegisterPasswordLimitCountsBytes(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Struct(UserRegisterRequest{Email: "a@x.com", Password: strings.Repeat("비", 24)}))

	err := v.Struct(UserRegisterRequest{Email: "a@x.com", Password: strings.Repeat("비", 25)})
	require.Error(t, err)
	assert.Equal(t, "must be at most 72 bytes", apperrors.ToDomainError(err).Details["password"])
}

func TestNormalizeTrimsBeforeValidation(t *testing.T) {
	req := IngredientRequest{Name: "  ", Category: " dairy ", AddedDate: "2024-01-01", ExpiryDate: "2024-01-10"}
	req.Normalize()
	assert.Equal(t, "dairy", req.Category)

	err := NewValidator().Struct(req)
	require.Error(t, err)
	assert.Equal(t, "is required", apperrors.ToDomainError(err).Details["name"])

	reg := UserRegisterRequest{Name: " Kim ", Email: "a@x.com", Password: "p1"}
	reg.Normalize()
	assert.Equal(t, "Kim", reg.Name)
}
