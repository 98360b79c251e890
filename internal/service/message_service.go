package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/repository"
	"gorm.io/gorm"
)

type MessageService struct {
	messageRepo repository.MessageRepositoryInterface
	memberRepo  repository.MemberRepositoryInterface
}

func NewMessageService(messageRepo repository.MessageRepositoryInterface, memberRepo repository.MemberRepositoryInterface) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		memberRepo:  memberRepo,
	}
}

type SendMessageInput struct {
	RoomID      uint                `json:"room_id"`
	Content     string              `json:"content"`
	Attachments []models.Attachment `json:"attachments"`
	ReplyToID   *uint               `json:"reply_to_id"`
}

// Send appends a message to the room on behalf of the user's member row.
// Content may be empty only when at least one attachment is present; a reply
// target must belong to the same room.
func (s *MessageService) Send(userID uint, input SendMessageInput) (*models.Message, error) {
	if input.Content == "" && len(input.Attachments) == 0 {
		return nil, ErrInvalidInput
	}

	member, err := s.memberRepo.FindByRoomAndUser(input.RoomID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	if input.ReplyToID != nil {
		target, err := s.messageRepo.FindByID(*input.ReplyToID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if target.RoomID != input.RoomID {
			return nil, ErrInvalidInput
		}
	}

	// Server-assigned attachment ids; clients cannot pick them.
	for i := range input.Attachments {
		input.Attachments[i].ID = uuid.NewString()
	}

	message := &models.Message{
		RoomID:      input.RoomID,
		MemberID:    member.ID,
		Content:     input.Content,
		Attachments: input.Attachments,
		ReplyToID:   input.ReplyToID,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	// Reload with sender info
	return s.messageRepo.FindByID(message.ID)
}

// List returns up to limit messages of the room newest-first. before, if set,
// is an opaque cursor (a message id) restricting results to strictly earlier
// messages in the room's order.
func (s *MessageService) List(roomID uint, limit int, before *uint) ([]models.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var cursor *models.Message
	if before != nil {
		msg, err := s.messageRepo.FindByID(*before)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if msg.RoomID != roomID {
			return nil, ErrInvalidInput
		}
		cursor = msg
	}

	return s.messageRepo.ListBefore(roomID, cursor, limit)
}

func (s *MessageService) Get(messageID uint) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return message, nil
}

// Edit rewrites the content of a message and stamps it edited. Ownership is
// enforced by the calling layer through the access guard.
func (s *MessageService) Edit(messageID uint, content string) (*models.Message, error) {
	if content == "" {
		return nil, ErrInvalidInput
	}

	message, err := s.Get(messageID)
	if err != nil {
		return nil, err
	}
	if message.IsDeleted {
		return nil, ErrInvalidInput
	}

	if err := s.messageRepo.UpdateContent(messageID, content); err != nil {
		return nil, err
	}
	return s.messageRepo.FindByID(messageID)
}

// SoftDelete tombstones the message. Identity and ordering position survive,
// so replies and read pointers that reference it remain valid.
func (s *MessageService) SoftDelete(messageID uint) (*models.Message, error) {
	if _, err := s.Get(messageID); err != nil {
		return nil, err
	}
	if err := s.messageRepo.SoftDelete(messageID); err != nil {
		return nil, err
	}
	return s.messageRepo.FindByID(messageID)
}
