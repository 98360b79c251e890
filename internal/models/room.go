package models

import (
	"time"
)

type RoomType string

const (
	RoomDirect RoomType = "dm"
	RoomGroup  RoomType = "group"
)

type Room struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Type   RoomType `gorm:"type:varchar(10);not null;default:'group'" json:"type"`
	Name   string   `gorm:"size:100" json:"name"`
	Avatar string   `json:"avatar"`

	// Cached pointer to the newest message for fast "latest" lookups.
	// Advanced on every send; may lag briefly under concurrent writers.
	LastMessageID *uint    `gorm:"index" json:"last_message_id"`
	LastMessage   *Message `gorm:"foreignKey:LastMessageID" json:"last_message,omitempty"`

	Members []Member `gorm:"foreignKey:RoomID" json:"members,omitempty"`
}

type RoomResponse struct {
	ID            uint      `json:"id"`
	Type          RoomType  `json:"type"`
	Name          string    `json:"name"`
	Avatar        string    `json:"avatar"`
	LastMessageID *uint     `json:"last_message_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *Room) ToResponse() RoomResponse {
	return RoomResponse{
		ID:            r.ID,
		Type:          r.Type,
		Name:          r.Name,
		Avatar:        r.Avatar,
		LastMessageID: r.LastMessageID,
		CreatedAt:     r.CreatedAt,
	}
}
