package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cookfarm/pantry-service/internal/api/dto"
	"github.com/cookfarm/pantry-service/internal/auth"
	"github.com/cookfarm/pantry-service/internal/service"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

// UsersHandler exposes account endpoints.
// Register and login answer with a {status, ...} body the web client relies on.
type UsersHandler struct {
	users     *service.UserService
	validator *dto.Validator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, validator *dto.Validator) *UsersHandler {
	return &UsersHandler{users: userService, validator: validator}
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, http.StatusBadRequest, apperrors.NewValidationError("invalid payload", nil))
	}
	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		return fail(c, http.StatusBadRequest, err)
	}

	res, err := h.users.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeConflict) || apperrors.HasCode(err, apperrors.CodeValidationFailed) {
			return fail(c, http.StatusBadRequest, err)
		}
		return err
	}

	return c.JSON(dto.UserAuthResponse{
		Status:  dto.StatusSuccess,
		Message: "registration successful",
		User:    dto.NewUserResponse(res.User),
		Auth:    authResponse(res.Token),
	})
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, http.StatusBadRequest, apperrors.NewValidationError("invalid payload", nil))
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, http.StatusBadRequest, err)
	}

	res, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeUnauthorized) {
			return fail(c, http.StatusUnauthorized, err)
		}
		return err
	}

	return c.JSON(dto.UserAuthResponse{
		Status: dto.StatusSuccess,
		User:   dto.NewUserResponse(res.User),
		Auth:   authResponse(res.Token),
	})
}

// Logout handles POST /users/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.users.Logout(c.UserContext(), principal.Claims); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func authResponse(token auth.IssuedToken) *dto.AuthResponse {
	return &dto.AuthResponse{Token: token.Token, ExpiresAt: token.ExpiresAt}
}

func fail(c *fiber.Ctx, status int, err error) error {
	domainErr := apperrors.ToDomainError(err)
	return c.Status(status).JSON(dto.UserFailureResponse{
		Status:  dto.StatusFail,
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Details: domainErr.Details,
	})
}
