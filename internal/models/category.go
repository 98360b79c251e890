package models

import (
	"time"
)

// Category is a user-private sidebar grouping. Rank is a comparison key for
// sort order only: per-user, not dense, not globally unique. Ties sort by id.
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint   `gorm:"not null;index" json:"user_id"`
	Title  string `gorm:"size:100;not null" json:"title"`
	Rank   int    `gorm:"not null;default:0" json:"index"`
}

type CategoryResponse struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Title  string `json:"title"`
	Rank   int    `json:"index"`
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:     c.ID,
		UserID: c.UserID,
		Title:  c.Title,
		Rank:   c.Rank,
	}
}
