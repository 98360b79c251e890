package models

import (
	"time"
)

// User carries the profile fields this service needs as a foreign-key target.
// Account lifecycle (registration, sessions) is owned by the identity service;
// rows here are mirrored from it.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username    string `gorm:"size:32;uniqueIndex;not null" json:"username"`
	DisplayName string `gorm:"size:100" json:"display_name"`
	Avatar      string `json:"avatar"`
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}
