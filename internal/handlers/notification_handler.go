package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/loftchat/loftchat-backend/internal/httpx"
	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/service"
	"github.com/loftchat/loftchat-backend/internal/validation"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	limit := validation.ClampLimit(c.Query("limit"), 20, 100)

	result, err := h.notificationService.List(userID, page, limit)
	if err != nil {
		return httpx.Internal(c, "list_notifications_failed")
	}

	items := make([]models.NotificationResponse, len(result.Items))
	for i := range result.Items {
		items[i] = result.Items[i].ToResponse()
	}

	return c.JSON(fiber.Map{
		"items":    items,
		"has_more": result.HasMore,
		"page":     page,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		NotificationIDs []uint `json:"notification_ids"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if len(input.NotificationIDs) == 0 {
		return httpx.BadRequest(c, "missing_ids", "notification_ids is required")
	}

	if err := h.notificationService.MarkRead(userID, input.NotificationIDs); err != nil {
		return mapServiceError(c, err, "mark_notifications_failed")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		return httpx.Internal(c, "mark_notifications_failed")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
