package service

import (
	"errors"

	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/repository"
	"gorm.io/gorm"
)

// ReadStateService tracks each member's read pointer and derives unread
// counts from it. The pointer only ever moves forward: a stale mark-as-read
// replayed by a client is accepted but ignored.
type ReadStateService struct {
	roomRepo    repository.RoomRepositoryInterface
	memberRepo  repository.MemberRepositoryInterface
	messageRepo repository.MessageRepositoryInterface
}

func NewReadStateService(
	roomRepo repository.RoomRepositoryInterface,
	memberRepo repository.MemberRepositoryInterface,
	messageRepo repository.MessageRepositoryInterface,
) *ReadStateService {
	return &ReadStateService{
		roomRepo:    roomRepo,
		memberRepo:  memberRepo,
		messageRepo: messageRepo,
	}
}

// MarkRead advances the member's read pointer to messageID, or to the room's
// latest message when messageID is nil. A room with no messages is a
// successful no-op.
func (s *ReadStateService) MarkRead(roomID, userID uint, messageID *uint) error {
	if _, err := s.memberRepo.FindByRoomAndUser(roomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}

	target, err := s.resolveTarget(roomID, messageID)
	if err != nil {
		return err
	}
	if target == nil {
		// Empty room: nothing to acknowledge.
		return nil
	}

	// The repository guard keeps the pointer monotonic; a rejected advance is
	// not an error, the client was simply behind.
	_, err = s.memberRepo.AdvanceReadPointer(roomID, userID, target.ID)
	return err
}

func (s *ReadStateService) resolveTarget(roomID uint, messageID *uint) (*models.Message, error) {
	if messageID != nil {
		msg, err := s.messageRepo.FindByID(*messageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if msg.RoomID != roomID {
			return nil, ErrInvalidInput
		}
		return msg, nil
	}

	// Prefer the room's cached latest pointer, falling back to a direct query
	// when the cache is stale or was never set.
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if room.LastMessageID != nil {
		if msg, err := s.messageRepo.FindByID(*room.LastMessageID); err == nil && msg.RoomID == roomID {
			return msg, nil
		}
	}
	msg, err := s.messageRepo.LatestInRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return msg, nil
}

// UnreadCount counts the messages of the room strictly after the member's
// read pointer; every message counts when the pointer was never set.
// Self-authored messages are counted like any other.
func (s *ReadStateService) UnreadCount(roomID, userID uint) (int64, error) {
	member, err := s.memberRepo.FindByRoomAndUser(roomID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrForbidden
		}
		return 0, err
	}

	var pointer *models.Message
	if member.LastReadMessageID != nil {
		if msg, err := s.messageRepo.FindByID(*member.LastReadMessageID); err == nil {
			pointer = msg
		}
	}

	return s.messageRepo.CountAfter(roomID, pointer)
}
