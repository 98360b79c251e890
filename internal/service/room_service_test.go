package service

import (
	"errors"
	"testing"

	"github.com/loftchat/loftchat-backend/internal/models"
)

func newRoomFixture() (*RoomService, *mockDB) {
	db := newMockDB()
	return NewRoomService(&mockRoomRepo{db}, &mockMemberRepo{db}), db
}

func TestRoomCreate(t *testing.T) {
	svc, db := newRoomFixture()

	tests := []struct {
		name        string
		input       CreateRoomInput
		wantErr     error
		wantMembers int
	}{
		{
			name:        "group room with invitees",
			input:       CreateRoomInput{Type: models.RoomGroup, Name: "general", UserIDs: []uint{11, 12}},
			wantMembers: 3,
		},
		{
			name:        "dm with one peer",
			input:       CreateRoomInput{Type: models.RoomDirect, UserIDs: []uint{11}},
			wantMembers: 2,
		},
		{
			name:    "dm needs exactly one peer",
			input:   CreateRoomInput{Type: models.RoomDirect, UserIDs: []uint{11, 12}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown type",
			input:   CreateRoomInput{Type: "broadcast"},
			wantErr: ErrInvalidInput,
		},
		{
			name:        "creator in invite list is not duplicated",
			input:       CreateRoomInput{Type: models.RoomGroup, UserIDs: []uint{10, 11}},
			wantMembers: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, err := svc.Create(10, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			var owner *models.Member
			count := 0
			for _, member := range db.members {
				if member.RoomID != room.ID {
					continue
				}
				count++
				if member.UserID == 10 {
					owner = member
				}
			}
			if count != tt.wantMembers {
				t.Errorf("member rows = %d, want %d", count, tt.wantMembers)
			}
			if owner == nil || owner.Role != models.RoleOwner {
				t.Errorf("creator is not owner: %+v", owner)
			}
		})
	}
}

func TestRoomInvite(t *testing.T) {
	svc, _ := newRoomFixture()

	room, err := svc.Create(10, CreateRoomInput{Type: models.RoomGroup, Name: "general"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	member, err := svc.Invite(room.ID, 11)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if member.Role != models.RoleMember {
		t.Errorf("invitee role = %q, want %q", member.Role, models.RoleMember)
	}

	if _, err := svc.Invite(room.ID, 11); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("duplicate invite error = %v, want %v", err, ErrInvalidInput)
	}
	if _, err := svc.Invite(999, 11); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing room invite error = %v, want %v", err, ErrNotFound)
	}
}

func TestRoomLeave(t *testing.T) {
	svc, db := newRoomFixture()

	room, err := svc.Create(10, CreateRoomInput{Type: models.RoomGroup, UserIDs: []uint{11}})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	if err := svc.Leave(room.ID, 11); err != nil {
		t.Fatalf("leave: %v", err)
	}
	for _, member := range db.members {
		if member.RoomID == room.ID && member.UserID == 11 {
			t.Errorf("member row survived leave")
		}
	}

	if err := svc.Leave(room.ID, 11); !errors.Is(err, ErrNotFound) {
		t.Errorf("repeat leave error = %v, want %v", err, ErrNotFound)
	}
}

func TestRoomMemberUserIDs(t *testing.T) {
	svc, _ := newRoomFixture()

	room, err := svc.Create(10, CreateRoomInput{Type: models.RoomGroup, UserIDs: []uint{11, 12}})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	ids, err := svc.MemberUserIDs(room.ID)
	if err != nil {
		t.Fatalf("member user ids: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("ids = %v, want 3 entries", ids)
	}
}

func TestRoomUpdateInfo(t *testing.T) {
	svc, _ := newRoomFixture()

	room, err := svc.Create(10, CreateRoomInput{Type: models.RoomGroup, Name: "old"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	updated, err := svc.UpdateInfo(room.ID, "new", "")
	if err != nil {
		t.Fatalf("update info: %v", err)
	}
	if updated.Name != "new" {
		t.Errorf("name = %q, want %q", updated.Name, "new")
	}

	if _, err := svc.UpdateInfo(999, "x", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing room update error = %v, want %v", err, ErrNotFound)
	}
}
