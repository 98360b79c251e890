package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/loftchat/loftchat-backend/internal/cache"
	"github.com/loftchat/loftchat-backend/internal/httpx"
	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/realtime"
	"github.com/loftchat/loftchat-backend/internal/service"
	"github.com/loftchat/loftchat-backend/internal/validation"
)

type RoomHandler struct {
	roomService         *service.RoomService
	notificationService *service.NotificationService
	access              *service.AccessService
	roomCache           *cache.RoomCache
	dispatcher          *realtime.Dispatcher
}

func NewRoomHandler(
	roomService *service.RoomService,
	notificationService *service.NotificationService,
	access *service.AccessService,
	roomCache *cache.RoomCache,
	dispatcher *realtime.Dispatcher,
) *RoomHandler {
	return &RoomHandler{
		roomService:         roomService,
		notificationService: notificationService,
		access:              access,
		roomCache:           roomCache,
		dispatcher:          dispatcher,
	}
}

func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.CreateRoomInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Name = validation.TrimAndLimit(input.Name, validation.MaxRoomNameLength())
	if input.Type == models.RoomGroup && input.Name == "" {
		return httpx.BadRequest(c, "missing_name", "name is required for group rooms")
	}

	room, err := h.roomService.Create(userID, input)
	if err != nil {
		return mapServiceError(c, err, "create_room_failed")
	}

	h.dispatcher.NotifyMany(c.Context(), input.UserIDs, "room-created", room.ToResponse())

	return c.Status(fiber.StatusCreated).JSON(room.ToResponse())
}

func (h *RoomHandler) InviteMember(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		RoomID uint `json:"room_id"`
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if input.RoomID == 0 || input.UserID == 0 {
		return httpx.BadRequest(c, "invalid_input", "room_id and user_id are required")
	}

	if !h.access.HasRole(userID, input.RoomID, models.RoleAdmin, models.RoleOwner) {
		return httpx.Forbidden(c, "not_room_admin", "Admin role required")
	}

	member, err := h.roomService.Invite(input.RoomID, input.UserID)
	if err != nil {
		return mapServiceError(c, err, "invite_member_failed")
	}

	// The invite is committed; a failed ledger write must not undo it, but
	// it is durable state going missing, so it gets logged.
	notification, err := h.notificationService.Create(input.UserID, userID, models.NotifRoomInvited, map[string]any{
		"room_id": input.RoomID,
	})
	if err != nil {
		log.Printf("rooms: invite notification for user %d in room %d failed: %v", input.UserID, input.RoomID, err)
	} else if notification != nil {
		h.dispatcher.NotifyUser(c.Context(), input.UserID, "notification", notification.ToResponse())
	}

	return c.Status(fiber.StatusCreated).JSON(member.ToResponse())
}

func (h *RoomHandler) UpdateRoomInfo(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		RoomID uint   `json:"room_id"`
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Name = validation.TrimAndLimit(input.Name, validation.MaxRoomNameLength())
	if input.RoomID == 0 || (input.Name == "" && input.Avatar == "") {
		return httpx.BadRequest(c, "invalid_input", "room_id and at least one field are required")
	}

	if !h.access.HasRole(userID, input.RoomID, models.RoleAdmin, models.RoleOwner) {
		return httpx.Forbidden(c, "not_room_admin", "Admin role required")
	}

	room, err := h.roomService.UpdateInfo(input.RoomID, input.Name, input.Avatar)
	if err != nil {
		return mapServiceError(c, err, "update_room_failed")
	}

	if recipients, err := h.roomService.MemberUserIDs(input.RoomID); err == nil {
		h.dispatcher.NotifyMany(c.Context(), recipients, "room-updated", room.ToResponse())
	}

	return c.JSON(room.ToResponse())
}

func (h *RoomHandler) LeaveRoom(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input struct {
		RoomID uint `json:"room_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if input.RoomID == 0 {
		return httpx.BadRequest(c, "missing_room", "room_id is required")
	}

	if err := h.roomService.Leave(input.RoomID, userID); err != nil {
		return mapServiceError(c, err, "leave_room_failed")
	}

	_ = h.roomCache.InvalidateUnreadCount(input.RoomID, userID)

	return c.JSON(fiber.Map{"status": "ok"})
}
