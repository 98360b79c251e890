package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher is the hosted pub/sub transport the dispatcher pushes through.
// At-most-once, unordered, no delivery receipt.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

// UserChannel is the per-user channel naming convention.
func UserChannel(userID uint) string {
	return fmt.Sprintf("user-notification:%d", userID)
}

// Envelope is the wire shape of a pushed event.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// RedisPublisher publishes envelopes over Redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, channel, data).Err()
}
