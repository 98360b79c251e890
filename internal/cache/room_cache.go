package cache

import (
	"fmt"
	"time"

	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// TTL constants for different cache types
const (
	RoomPageTTL    = 5 * time.Minute
	UnreadCountTTL = 1 * time.Minute
)

// RoomCache handles room-scoped caching: the newest message page and
// per-member unread counts. Every method is nil-safe so the service keeps
// working when Redis is absent.
type RoomCache struct {
	redis *RedisCache
}

func NewRoomCache(redis *RedisCache) *RoomCache {
	return &RoomCache{redis: redis}
}

func roomPageKey(roomID uint) string {
	return fmt.Sprintf("room:%d:latest", roomID)
}

func unreadKey(roomID, userID uint) string {
	return fmt.Sprintf("unread:%d:%d", roomID, userID)
}

// GetLatestPage retrieves the cached newest-first message page of a room.
func (rc *RoomCache) GetLatestPage(roomID uint) ([]models.Message, bool) {
	if rc == nil || rc.redis == nil {
		return nil, false
	}
	data, err := rc.redis.Get(roomPageKey(roomID))
	if err != nil || data == nil {
		return nil, false
	}

	var messages []models.Message
	if err := msgpack.Unmarshal(data, &messages); err != nil {
		return nil, false
	}
	return messages, true
}

// SetLatestPage caches the newest-first message page of a room.
func (rc *RoomCache) SetLatestPage(roomID uint, messages []models.Message) error {
	if rc == nil || rc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(messages)
	if err != nil {
		return err
	}
	return rc.redis.Set(roomPageKey(roomID), data, RoomPageTTL)
}

// InvalidateRoom drops the message page and every member's unread count for
// the room. Called after any write that changes what members would see.
func (rc *RoomCache) InvalidateRoom(roomID uint) error {
	if rc == nil || rc.redis == nil {
		return nil
	}
	if err := rc.redis.Delete(roomPageKey(roomID)); err != nil {
		return err
	}
	return rc.redis.DeletePattern(fmt.Sprintf("unread:%d:*", roomID))
}

// GetUnreadCount retrieves a cached unread count
func (rc *RoomCache) GetUnreadCount(roomID, userID uint) (int64, bool) {
	if rc == nil || rc.redis == nil {
		return 0, false
	}
	data, err := rc.redis.Get(unreadKey(roomID, userID))
	if err != nil || data == nil {
		return 0, false
	}

	var count int64
	if err := msgpack.Unmarshal(data, &count); err != nil {
		return 0, false
	}
	return count, true
}

// SetUnreadCount caches an unread count
func (rc *RoomCache) SetUnreadCount(roomID, userID uint, count int64) error {
	if rc == nil || rc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(count)
	if err != nil {
		return err
	}
	return rc.redis.Set(unreadKey(roomID, userID), data, UnreadCountTTL)
}

// InvalidateUnreadCount removes a single member's unread count
func (rc *RoomCache) InvalidateUnreadCount(roomID, userID uint) error {
	if rc == nil || rc.redis == nil {
		return nil
	}
	return rc.redis.Delete(unreadKey(roomID, userID))
}
