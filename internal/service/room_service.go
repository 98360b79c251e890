package service

import (
	"errors"

	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/repository"
	"gorm.io/gorm"
)

type RoomService struct {
	roomRepo   repository.RoomRepositoryInterface
	memberRepo repository.MemberRepositoryInterface
}

func NewRoomService(roomRepo repository.RoomRepositoryInterface, memberRepo repository.MemberRepositoryInterface) *RoomService {
	return &RoomService{
		roomRepo:   roomRepo,
		memberRepo: memberRepo,
	}
}

type CreateRoomInput struct {
	Type    models.RoomType `json:"type"`
	Name    string          `json:"name"`
	Avatar  string          `json:"avatar"`
	UserIDs []uint          `json:"user_ids"`
}

// Create makes the room and its initial member rows: the creator as owner,
// everyone in UserIDs as a plain member.
func (s *RoomService) Create(creatorID uint, input CreateRoomInput) (*models.Room, error) {
	if input.Type != models.RoomDirect && input.Type != models.RoomGroup {
		return nil, ErrInvalidInput
	}
	if input.Type == models.RoomDirect && len(input.UserIDs) != 1 {
		return nil, ErrInvalidInput
	}

	room := &models.Room{
		Type:   input.Type,
		Name:   input.Name,
		Avatar: input.Avatar,
	}
	if err := s.roomRepo.Create(room); err != nil {
		return nil, err
	}

	owner := &models.Member{RoomID: room.ID, UserID: creatorID, Role: models.RoleOwner}
	if err := s.memberRepo.Create(owner); err != nil {
		return nil, err
	}
	for _, userID := range input.UserIDs {
		if userID == creatorID {
			continue
		}
		member := &models.Member{RoomID: room.ID, UserID: userID, Role: models.RoleMember}
		if err := s.memberRepo.Create(member); err != nil {
			return nil, err
		}
	}

	return room, nil
}

func (s *RoomService) Get(roomID uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

// Invite adds a user to the room. Already-present users are reported as
// invalid input rather than duplicated.
func (s *RoomService) Invite(roomID, inviteeID uint) (*models.Member, error) {
	if _, err := s.Get(roomID); err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.FindByRoomAndUser(roomID, inviteeID); err == nil {
		return nil, ErrInvalidInput
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member := &models.Member{RoomID: roomID, UserID: inviteeID, Role: models.RoleMember}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateInfo rewrites the room's display fields. Role gating (admin/owner)
// happens in the calling layer through the access guard.
func (s *RoomService) UpdateInfo(roomID uint, name, avatar string) (*models.Room, error) {
	if _, err := s.Get(roomID); err != nil {
		return nil, err
	}
	if err := s.roomRepo.UpdateInfo(roomID, name, avatar); err != nil {
		return nil, err
	}
	return s.Get(roomID)
}

func (s *RoomService) Leave(roomID, userID uint) error {
	if _, err := s.memberRepo.FindByRoomAndUser(roomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.memberRepo.Delete(roomID, userID)
}

// MemberUserIDs is the recipient set for room-scoped fan-out.
func (s *RoomService) MemberUserIDs(roomID uint) ([]uint, error) {
	return s.memberRepo.ListUserIDsByRoom(roomID)
}
