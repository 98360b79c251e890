package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisPublisher(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, UserChannel(7))
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	pub := NewRedisPublisher(client)
	if err := pub.Publish(ctx, UserChannel(7), "message:new", map[string]any{"id": float64(1)}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var env Envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			t.Fatalf("unmarshal envelope: %v", err)
		}
		if env.Event != "message:new" {
			t.Errorf("event = %q, want %q", env.Event, "message:new")
		}
		payload, ok := env.Payload.(map[string]any)
		if !ok || payload["id"] != float64(1) {
			t.Errorf("payload = %v, want id=1", env.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no message received on %s", UserChannel(7))
	}
}

func TestUserChannel(t *testing.T) {
	if got := UserChannel(42); got != "user-notification:42" {
		t.Errorf("UserChannel(42) = %q, want %q", got, "user-notification:42")
	}
}
