package models

import (
	"time"
)

type NotificationType string

const (
	NotifPostLiked    NotificationType = "post-liked"
	NotifCommentAdded NotificationType = "comment-added"
	NotifRoomInvited  NotificationType = "room-invited"
)

// Notification is the durable record behind the bell icon. Rows are written
// by whichever component caused the event; self-triggered events are never
// recorded (sender == recipient is suppressed at creation).
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RecipientID uint `gorm:"not null;index" json:"recipient_id"`
	SenderID    uint `gorm:"not null" json:"sender_id"`

	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	Type    NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Payload map[string]any   `gorm:"serializer:json" json:"payload"`
	Read    bool             `gorm:"column:is_read;not null;default:false;index" json:"read"`
}

type NotificationResponse struct {
	ID        uint             `json:"id"`
	SenderID  uint             `json:"sender_id"`
	Sender    UserResponse     `json:"sender"`
	Type      NotificationType `json:"type"`
	Payload   map[string]any   `json:"payload"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		SenderID:  n.SenderID,
		Sender:    n.Sender.ToResponse(),
		Type:      n.Type,
		Payload:   n.Payload,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
