package service

import (
	"testing"

	"github.com/loftchat/loftchat-backend/internal/models"
)

func newAccessFixture() (*AccessService, *mockDB) {
	db := newMockDB()
	return NewAccessService(&mockMemberRepo{db}, &mockMessageRepo{db}), db
}

func TestIsMember(t *testing.T) {
	access, db := newAccessFixture()

	db.rooms[1] = &models.Room{ID: 1, Type: models.RoomGroup}
	db.members[1] = &models.Member{ID: 1, RoomID: 1, UserID: 10, Role: models.RoleMember}

	tests := []struct {
		name   string
		userID uint
		roomID uint
		want   bool
	}{
		{"member of the room", 10, 1, true},
		{"stranger", 11, 1, false},
		{"room does not exist", 10, 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.IsMember(tt.userID, tt.roomID); got != tt.want {
				t.Errorf("IsMember(%d, %d) = %v, want %v", tt.userID, tt.roomID, got, tt.want)
			}
		})
	}
}

func TestIsMessageOwner(t *testing.T) {
	access, db := newAccessFixture()

	db.members[1] = &models.Member{ID: 1, RoomID: 1, UserID: 10}
	db.members[2] = &models.Member{ID: 2, RoomID: 1, UserID: 11}
	db.messages[5] = &models.Message{ID: 5, RoomID: 1, MemberID: 1, Content: "mine"}

	tests := []struct {
		name      string
		userID    uint
		messageID uint
		want      bool
	}{
		{"author owns via member indirection", 10, 5, true},
		{"fellow member does not own", 11, 5, false},
		{"missing message fails closed", 10, 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.IsMessageOwner(tt.userID, tt.messageID); got != tt.want {
				t.Errorf("IsMessageOwner(%d, %d) = %v, want %v", tt.userID, tt.messageID, got, tt.want)
			}
		})
	}
}

func TestHasRole(t *testing.T) {
	access, db := newAccessFixture()

	db.members[1] = &models.Member{ID: 1, RoomID: 1, UserID: 10, Role: models.RoleAdmin}
	db.members[2] = &models.Member{ID: 2, RoomID: 1, UserID: 11, Role: models.RoleMember}

	tests := []struct {
		name   string
		userID uint
		roles  []models.MemberRole
		want   bool
	}{
		{"admin passes admin/owner gate", 10, []models.MemberRole{models.RoleAdmin, models.RoleOwner}, true},
		{"plain member fails admin/owner gate", 11, []models.MemberRole{models.RoleAdmin, models.RoleOwner}, false},
		{"plain member passes member gate", 11, []models.MemberRole{models.RoleMember}, true},
		{"non-member fails every gate", 12, []models.MemberRole{models.RoleMember}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.HasRole(tt.userID, 1, tt.roles...); got != tt.want {
				t.Errorf("HasRole(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}
