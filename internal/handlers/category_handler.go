package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/loftchat/loftchat-backend/internal/httpx"
	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/service"
	"github.com/loftchat/loftchat-backend/internal/validation"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Name = validation.TrimAndLimit(input.Name, validation.MaxCategoryTitleLength())
	if input.Name == "" {
		return httpx.BadRequest(c, "missing_name", "name is required")
	}

	category, err := h.categoryService.Create(userID, input.Name)
	if err != nil {
		return mapServiceError(c, err, "create_category_failed")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	categories, err := h.categoryService.ListByUser(userID)
	if err != nil {
		return httpx.Internal(c, "list_categories_failed")
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *CategoryHandler) SortCategory(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	// Index arrives loosely typed from older clients; anything non-numeric is
	// rejected up front.
	var input struct {
		CategoryID uint            `json:"category_id"`
		Index      json.RawMessage `json:"index"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if input.CategoryID == 0 {
		return httpx.BadRequest(c, "missing_category", "category_id is required")
	}

	rank, ok := parseIndex(input.Index)
	if !ok {
		return httpx.BadRequest(c, "invalid_index", "index must be numeric")
	}

	if err := h.categoryService.SetRank(userID, input.CategoryID, rank); err != nil {
		return mapServiceError(c, err, "sort_category_failed")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *CategoryHandler) RenameCategory(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		CategoryID uint   `json:"category_id"`
		Name       string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Name = validation.TrimAndLimit(input.Name, validation.MaxCategoryTitleLength())
	if input.CategoryID == 0 || input.Name == "" {
		return httpx.BadRequest(c, "invalid_input", "category_id and name are required")
	}

	category, err := h.categoryService.Rename(userID, input.CategoryID, input.Name)
	if err != nil {
		return mapServiceError(c, err, "rename_category_failed")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		CategoryID uint `json:"category_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if input.CategoryID == 0 {
		return httpx.BadRequest(c, "missing_category", "category_id is required")
	}

	if err := h.categoryService.Delete(userID, input.CategoryID); err != nil {
		return mapServiceError(c, err, "delete_category_failed")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *CategoryHandler) SortMember(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	// category_id may be a numeric id or one of the built-in bucket names
	// ("dm", "group"), which map to the null default bucket.
	var input struct {
		RoomID     uint            `json:"room_id"`
		CategoryID json.RawMessage `json:"category_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if input.RoomID == 0 {
		return httpx.BadRequest(c, "missing_room", "room_id is required")
	}

	categoryID, ok := parseCategoryRef(input.CategoryID)
	if !ok {
		return httpx.BadRequest(c, "invalid_category", "Invalid category_id")
	}

	if err := h.categoryService.ReassignMember(userID, input.RoomID, categoryID); err != nil {
		return mapServiceError(c, err, "sort_member_failed")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func parseIndex(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

func parseCategoryRef(raw json.RawMessage) (*uint, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == string(models.RoomDirect) || s == string(models.RoomGroup) {
			return nil, true
		}
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, false
		}
		id := uint(n)
		return &id, true
	}
	var n uint
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, false
	}
	if n == 0 {
		return nil, true
	}
	return &n, true
}
