package models

import (
	"time"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

type NotifyPref string

const (
	NotifyAll      NotifyPref = "all"
	NotifyMentions NotifyPref = "mentions"
	NotifyNone     NotifyPref = "none"
)

// Member is the join entity for a user's participation in a room. Its
// existence is the authorization to read and write that room's messages.
type Member struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RoomID uint `gorm:"not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_room_user;index" json:"user_id"`

	Room Room `gorm:"foreignKey:RoomID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Role MemberRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`

	// Nullable grouping label; null means the default dm/group bucket.
	CategoryID *uint `gorm:"index" json:"category_id"`

	// Read pointer: newest message in this room the member has acknowledged.
	// Must reference a message of the same room; null means nothing read yet.
	LastReadMessageID *uint `json:"last_read_message_id"`

	NotifyPref NotifyPref `gorm:"type:varchar(20);not null;default:'all'" json:"notify_pref"`
	Pinned     bool       `gorm:"not null;default:false" json:"pinned"`
}

type MemberResponse struct {
	ID                uint         `json:"id"`
	RoomID            uint         `json:"room_id"`
	UserID            uint         `json:"user_id"`
	Role              MemberRole   `json:"role"`
	CategoryID        *uint        `json:"category_id"`
	LastReadMessageID *uint        `json:"last_read_message_id"`
	NotifyPref        NotifyPref   `json:"notify_pref"`
	Pinned            bool         `json:"pinned"`
	User              UserResponse `json:"user"`
}

func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:                m.ID,
		RoomID:            m.RoomID,
		UserID:            m.UserID,
		Role:              m.Role,
		CategoryID:        m.CategoryID,
		LastReadMessageID: m.LastReadMessageID,
		NotifyPref:        m.NotifyPref,
		Pinned:            m.Pinned,
		User:              m.User.ToResponse(),
	}
}
