package service

import (
	"log"

	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/repository"
)

// AccessService answers membership and ownership questions for the rest of
// the system. It has no side effects and fails closed: a lookup miss or a
// store error is reported as "no", never as a grant.
type AccessService struct {
	memberRepo  repository.MemberRepositoryInterface
	messageRepo repository.MessageRepositoryInterface
}

func NewAccessService(memberRepo repository.MemberRepositoryInterface, messageRepo repository.MessageRepositoryInterface) *AccessService {
	return &AccessService{
		memberRepo:  memberRepo,
		messageRepo: messageRepo,
	}
}

// IsMember reports whether a member row exists for the (room, user) pair.
// Membership is the authorization to read and write the room.
func (s *AccessService) IsMember(userID, roomID uint) bool {
	_, err := s.memberRepo.FindByRoomAndUser(roomID, userID)
	if err != nil {
		return false
	}
	return true
}

// IsMessageOwner reports whether the message's sending member belongs to the
// user, resolving the message -> member -> user indirection in the store.
func (s *AccessService) IsMessageOwner(userID, messageID uint) bool {
	owned, err := s.messageRepo.IsOwnedByUser(messageID, userID)
	if err != nil {
		log.Printf("access: ownership lookup failed for message %d: %v", messageID, err)
		return false
	}
	return owned
}

// HasRole reports whether the user's role in the room is one of the given
// roles. Used to gate admin-only room mutations.
func (s *AccessService) HasRole(userID, roomID uint, roles ...models.MemberRole) bool {
	role, err := s.memberRepo.GetRole(roomID, userID)
	if err != nil {
		return false
	}
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}
