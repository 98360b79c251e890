package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/loftchat/loftchat-backend/internal/cache"
	"github.com/loftchat/loftchat-backend/internal/httpx"
	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/realtime"
	"github.com/loftchat/loftchat-backend/internal/service"
	"github.com/loftchat/loftchat-backend/internal/validation"
)

type MessageHandler struct {
	messageService      *service.MessageService
	readStateService    *service.ReadStateService
	notificationService *service.NotificationService
	roomService         *service.RoomService
	access              *service.AccessService
	roomCache           *cache.RoomCache
	dispatcher          *realtime.Dispatcher
}

func NewMessageHandler(
	messageService *service.MessageService,
	readStateService *service.ReadStateService,
	notificationService *service.NotificationService,
	roomService *service.RoomService,
	access *service.AccessService,
	roomCache *cache.RoomCache,
	dispatcher *realtime.Dispatcher,
) *MessageHandler {
	return &MessageHandler{
		messageService:      messageService,
		readStateService:    readStateService,
		notificationService: notificationService,
		roomService:         roomService,
		access:              access,
		roomCache:           roomCache,
		dispatcher:          dispatcher,
	}
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Content = validation.TrimAndLimit(input.Content, validation.MaxMessageLength())
	if input.RoomID == 0 {
		return httpx.BadRequest(c, "missing_room", "room_id is required")
	}
	if input.Content == "" && len(input.Attachments) == 0 {
		return httpx.BadRequest(c, "empty_message", "Content or attachments required")
	}

	message, err := h.messageService.Send(userID, input)
	if err != nil {
		return mapServiceError(c, err, "send_message_failed")
	}

	_ = h.roomCache.InvalidateRoom(input.RoomID)

	// The write is committed; delivery is best-effort from here on.
	if recipients, err := h.roomService.MemberUserIDs(input.RoomID); err == nil {
		h.dispatcher.NotifyMany(c.Context(), recipients, "new-message", message.ToResponse())
	}

	return c.Status(fiber.StatusCreated).JSON(message.ToResponse())
}

func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	roomID, err := strconv.ParseUint(c.Query("roomId"), 10, 32)
	if err != nil {
		return httpx.BadRequest(c, "invalid_room", "roomId is required")
	}
	if !h.access.IsMember(userID, uint(roomID)) {
		return httpx.Forbidden(c, "not_a_member", "Not a member of this room")
	}

	limit := validation.ClampLimit(c.Query("limit"), 50, 100)

	var before *uint
	if beforeStr := c.Query("before"); beforeStr != "" {
		cursor, err := strconv.ParseUint(beforeStr, 10, 32)
		if err != nil {
			return httpx.BadRequest(c, "invalid_cursor", "Invalid before cursor")
		}
		b := uint(cursor)
		before = &b
	}

	var messages []models.Message
	if before == nil {
		// First page: serve from the room cache when it has enough rows.
		if cached, ok := h.roomCache.GetLatestPage(uint(roomID)); ok && len(cached) >= limit {
			messages = cached[:limit]
		}
	}
	if messages == nil {
		messages, err = h.messageService.List(uint(roomID), limit, before)
		if err != nil {
			return mapServiceError(c, err, "fetch_messages_failed")
		}
		if before == nil && len(messages) > 0 {
			_ = h.roomCache.SetLatestPage(uint(roomID), messages)
		}
	}

	responses := make([]models.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = messages[i].ToResponse()
	}

	result := fiber.Map{
		"messages": responses,
		"count":    len(responses),
	}
	if len(messages) > 0 {
		// Oldest message in this page is the cursor for the next one.
		result["next_cursor"] = messages[len(messages)-1].ID
	}

	return c.JSON(result)
}

func (h *MessageHandler) EditMessage(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		MessageID uint   `json:"message_id"`
		Content   string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Content = validation.TrimAndLimit(input.Content, validation.MaxMessageLength())
	if input.MessageID == 0 || input.Content == "" {
		return httpx.BadRequest(c, "invalid_input", "message_id and content are required")
	}

	if !h.access.IsMessageOwner(userID, input.MessageID) {
		return httpx.Forbidden(c, "not_message_owner", "Not the message owner")
	}

	message, err := h.messageService.Edit(input.MessageID, input.Content)
	if err != nil {
		return mapServiceError(c, err, "edit_message_failed")
	}

	_ = h.roomCache.InvalidateRoom(message.RoomID)
	if recipients, err := h.roomService.MemberUserIDs(message.RoomID); err == nil {
		h.dispatcher.NotifyMany(c.Context(), recipients, "message-edited", message.ToResponse())
	}

	return c.JSON(message.ToResponse())
}

func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		MessageID uint `json:"message_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if input.MessageID == 0 {
		return httpx.BadRequest(c, "invalid_input", "message_id is required")
	}

	if !h.access.IsMessageOwner(userID, input.MessageID) {
		return httpx.Forbidden(c, "not_message_owner", "Not the message owner")
	}

	message, err := h.messageService.SoftDelete(input.MessageID)
	if err != nil {
		return mapServiceError(c, err, "delete_message_failed")
	}

	_ = h.roomCache.InvalidateRoom(message.RoomID)
	if recipients, err := h.roomService.MemberUserIDs(message.RoomID); err == nil {
		h.dispatcher.NotifyMany(c.Context(), recipients, "message-deleted", message.ToResponse())
	}

	return c.JSON(message.ToResponse())
}

func (h *MessageHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	roomID, err := strconv.ParseUint(c.Query("roomId"), 10, 32)
	if err != nil {
		return httpx.BadRequest(c, "invalid_room", "roomId is required")
	}

	// The userId parameter exists for client symmetry; counts are only served
	// for the authenticated caller.
	if userIDStr := c.Query("userId"); userIDStr != "" {
		queried, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil || uint(queried) != userID {
			return httpx.Forbidden(c, "foreign_unread", "Cannot read another user's unread count")
		}
	}

	// Membership gates the cache too, not just the store path.
	if !h.access.IsMember(userID, uint(roomID)) {
		return httpx.Forbidden(c, "not_a_member", "Not a member of this room")
	}

	if count, ok := h.roomCache.GetUnreadCount(uint(roomID), userID); ok {
		return c.JSON(fiber.Map{"room_id": roomID, "unread": count})
	}

	count, err := h.readStateService.UnreadCount(uint(roomID), userID)
	if err != nil {
		return mapServiceError(c, err, "unread_count_failed")
	}
	_ = h.roomCache.SetUnreadCount(uint(roomID), userID, count)

	return c.JSON(fiber.Map{"room_id": roomID, "unread": count})
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		RoomID    uint  `json:"room_id"`
		MessageID *uint `json:"message_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if input.RoomID == 0 {
		return httpx.BadRequest(c, "missing_room", "room_id is required")
	}

	if err := h.readStateService.MarkRead(input.RoomID, userID, input.MessageID); err != nil {
		return mapServiceError(c, err, "mark_read_failed")
	}

	_ = h.roomCache.InvalidateUnreadCount(input.RoomID, userID)

	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *MessageHandler) LikeMessage(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		MessageID uint `json:"message_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if input.MessageID == 0 {
		return httpx.BadRequest(c, "invalid_input", "message_id is required")
	}

	message, err := h.messageService.Get(input.MessageID)
	if err != nil {
		return mapServiceError(c, err, "like_message_failed")
	}
	if !h.access.IsMember(userID, message.RoomID) {
		return httpx.Forbidden(c, "not_a_member", "Not a member of this room")
	}

	authorID := message.Member.UserID
	notification, err := h.notificationService.Create(authorID, userID, models.NotifPostLiked, map[string]any{
		"message_id": message.ID,
		"room_id":    message.RoomID,
	})
	if err != nil {
		return mapServiceError(c, err, "like_message_failed")
	}

	// Self-likes are suppressed upstream; nothing to deliver then.
	if notification != nil {
		h.dispatcher.NotifyUser(c.Context(), authorID, "notification", notification.ToResponse())
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
