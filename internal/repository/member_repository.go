package repository

import (
	"github.com/loftchat/loftchat-backend/internal/models"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

func (r *MemberRepository) FindByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.Preload("User").First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) FindByRoomAndUser(roomID, userID uint) (*models.Member, error) {
	var member models.Member
	err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) Delete(roomID, userID uint) error {
	return r.db.Where("room_id = ? AND user_id = ?", roomID, userID).Delete(&models.Member{}).Error
}

// ListUserIDsByRoom returns the distinct user ids of a room's members,
// the recipient set for fan-out.
func (r *MemberRepository) ListUserIDsByRoom(roomID uint) ([]uint, error) {
	var userIDs []uint
	err := r.db.Model(&models.Member{}).
		Where("room_id = ?", roomID).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *MemberRepository) GetRole(roomID, userID uint) (models.MemberRole, error) {
	var member models.Member
	if err := r.db.Select("role").Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error; err != nil {
		return "", err
	}
	return member.Role, nil
}

func (r *MemberRepository) SetCategory(memberID uint, categoryID *uint) error {
	return r.db.Model(&models.Member{}).Where("id = ?", memberID).
		Update("category_id", categoryID).Error
}

// ClearCategory resets every member assigned to the category back to the
// default bucket. Safe to retry: already-cleared rows do not match the filter.
func (r *MemberRepository) ClearCategory(categoryID uint) (int64, error) {
	res := r.db.Model(&models.Member{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil)
	return res.RowsAffected, res.Error
}

// AdvanceReadPointer moves the member's read pointer forward, never backward.
// Message ids are assigned in append order, so the id comparison agrees with
// the room's (created_at, id) total order. Returns false when the guard
// rejected a stale target (or the member does not exist).
func (r *MemberRepository) AdvanceReadPointer(roomID, userID, messageID uint) (bool, error) {
	res := r.db.Model(&models.Member{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Where("last_read_message_id IS NULL OR last_read_message_id < ?", messageID).
		Update("last_read_message_id", messageID)
	return res.RowsAffected > 0, res.Error
}
