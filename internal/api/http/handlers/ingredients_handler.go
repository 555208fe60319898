package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cookfarm/pantry-service/internal/api/dto"
	"github.com/cookfarm/pantry-service/internal/service"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

// IngredientsHandler manages ingredient endpoints.
type IngredientsHandler struct {
	service   *service.IngredientService
	validator *dto.Validator
}

// NewIngredientsHandler constructs handler.
func NewIngredientsHandler(ingredientService *service.IngredientService, validator *dto.Validator) *IngredientsHandler {
	return &IngredientsHandler{service: ingredientService, validator: validator}
}

// Add POST /ingredients/add/:userId.
func (h *IngredientsHandler) Add(c *fiber.Ctx) error {
	input, err := h.parseInput(c)
	if err != nil {
		return err
	}
	ingredient, err := h.service.Add(c.UserContext(), c.Params("userId"), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "ingredient added",
		"data":    dto.NewIngredientResponse(ingredient),
	})
}

// ListByUser GET /ingredients/user/:userId.
func (h *IngredientsHandler) ListByUser(c *fiber.Ctx) error {
	items, err := h.service.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIngredientList(items)})
}

// ListAll GET /ingredients/all.
func (h *IngredientsHandler) ListAll(c *fiber.Ctx) error {
	items, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIngredientList(items)})
}

// Search GET /ingredients/search?name=.
func (h *IngredientsHandler) Search(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return apperrors.NewValidationError("name query parameter required", map[string]any{"name": "is required"})
	}
	ingredient, err := h.service.FindByName(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIngredientResponse(ingredient)})
}

// Update PUT /ingredients/:ingredientId.
func (h *IngredientsHandler) Update(c *fiber.Ctx) error {
	input, err := h.parseInput(c)
	if err != nil {
		return err
	}
	ingredient, err := h.service.Update(c.UserContext(), c.Params("ingredientId"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "ingredient updated",
		"data":    dto.NewIngredientResponse(ingredient),
	})
}

// Delete DELETE /ingredients/:id.
func (h *IngredientsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *IngredientsHandler) parseInput(c *fiber.Ctx) (service.IngredientInput, error) {
	var req dto.IngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return service.IngredientInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		return service.IngredientInput{}, err
	}
	added, expiry, err := req.Dates()
	if err != nil {
		return service.IngredientInput{}, apperrors.NewValidationError(err.Error(), nil)
	}
	return service.IngredientInput{
		Name:       req.Name,
		Category:   req.Category,
		AddedDate:  added,
		ExpiryDate: expiry,
		Memo:       req.MemoText(),
	}, nil
}
