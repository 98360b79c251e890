package service

import (
	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/repository"
)

type NotificationService struct {
	notificationRepo repository.NotificationRepositoryInterface
}

func NewNotificationService(notificationRepo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Create records a durable notification for the recipient. Self-triggered
// events are suppressed: when sender and recipient coincide the call is a
// no-op that returns neither a row nor an error.
func (s *NotificationService) Create(recipientID, senderID uint, kind models.NotificationType, payload map[string]any) (*models.Notification, error) {
	if recipientID == senderID {
		return nil, nil
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        kind,
		Payload:     payload,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

type NotificationPage struct {
	Items   []models.Notification `json:"items"`
	HasMore bool                  `json:"has_more"`
}

// List returns the recipient's notifications newest-first with offset
// pagination. One extra row is requested to decide has_more.
func (s *NotificationService) List(recipientID uint, page, limit int) (*NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	items, err := s.notificationRepo.ListByRecipient(recipientID, (page-1)*limit, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(items) > limit {
		hasMore = true
		items = items[:limit]
	}
	return &NotificationPage{Items: items, HasMore: hasMore}, nil
}

// MarkRead flips the read flag on the recipient's own rows among ids. Ids
// owned by someone else are skipped silently.
func (s *NotificationService) MarkRead(recipientID uint, ids []uint) error {
	if len(ids) == 0 {
		return ErrInvalidInput
	}
	_, err := s.notificationRepo.MarkRead(recipientID, ids)
	return err
}

func (s *NotificationService) MarkAllRead(recipientID uint) error {
	_, err := s.notificationRepo.MarkAllRead(recipientID)
	return err
}
