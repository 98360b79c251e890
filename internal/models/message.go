package models

import (
	"time"
)

// Attachment is stored inline on the message as JSON metadata. Blob upload
// and URL signing happen in the file service, not here.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Mime string `json:"mime"`
}

// Message rows are append-only: position and identity never change after
// insert. Total order within a room is (created_at, id) — creation time is
// not unique under concurrent writers, so id breaks ties. Edits rewrite
// content only; deletes tombstone in place so replies and read pointers that
// reference the row stay valid.
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_room_order,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RoomID   uint `gorm:"not null;index:idx_room_order,priority:1" json:"room_id"`
	MemberID uint `gorm:"not null;index" json:"member_id"`

	Room   Room   `gorm:"foreignKey:RoomID" json:"-"`
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`

	Content     string       `gorm:"type:text" json:"content"`
	Attachments []Attachment `gorm:"serializer:json" json:"attachments,omitempty"`

	// Reply target, if any; must belong to the same room.
	ReplyToID *uint    `gorm:"index" json:"reply_to_id"`
	ReplyTo   *Message `gorm:"foreignKey:ReplyToID" json:"-"`

	EditedAt  *time.Time `json:"edited_at"`
	IsDeleted bool       `gorm:"not null;default:false" json:"is_deleted"`
}

type MessageResponse struct {
	ID          uint         `json:"id"`
	RoomID      uint         `json:"room_id"`
	MemberID    uint         `json:"member_id"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
	ReplyToID   *uint        `json:"reply_to_id"`
	EditedAt    *time.Time   `json:"edited_at"`
	IsDeleted   bool         `json:"is_deleted"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (m *Message) ToResponse() MessageResponse {
	resp := MessageResponse{
		ID:          m.ID,
		RoomID:      m.RoomID,
		MemberID:    m.MemberID,
		Content:     m.Content,
		Attachments: m.Attachments,
		ReplyToID:   m.ReplyToID,
		EditedAt:    m.EditedAt,
		IsDeleted:   m.IsDeleted,
		CreatedAt:   m.CreatedAt,
	}
	if m.IsDeleted {
		resp.Content = ""
		resp.Attachments = nil
	}
	return resp
}

// OrderedBefore reports whether m sorts strictly before other in the room's
// (created_at, id) total order.
func (m *Message) OrderedBefore(other *Message) bool {
	if m.CreatedAt.Equal(other.CreatedAt) {
		return m.ID < other.ID
	}
	return m.CreatedAt.Before(other.CreatedAt)
}
