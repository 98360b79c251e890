package realtime

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
)

// Gateway bridges a user's websocket to their pub/sub channel. It is a pure
// relay: the broker stays the source of truth for fan-out, the socket is a
// latency optimization only. A dropped socket loses nothing durable.
type Gateway struct {
	rdb          *redis.Client
	pingInterval time.Duration
	pongTimeout  time.Duration
}

func NewGateway(rdb *redis.Client) *Gateway {
	return &Gateway{
		rdb:          rdb,
		pingInterval: 30 * time.Second,
		pongTimeout:  90 * time.Second,
	}
}

// Handle runs one websocket session: subscribe to the caller's channel,
// forward every published envelope, keep the connection alive with pings.
func (g *Gateway) Handle(c *websocket.Conn) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := g.rdb.Subscribe(ctx, UserChannel(userID))
	defer sub.Close()

	c.SetReadDeadline(time.Now().Add(g.pongTimeout))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(g.pongTimeout))
	})

	log.Printf("realtime: user %d connected", userID)

	go func() {
		ticker := time.NewTicker(g.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, more := <-sub.Channel():
				if !more {
					return
				}
				if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					log.Printf("realtime: write to user %d failed: %v", userID, err)
					cancel()
					return
				}
			case <-ticker.C:
				if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// Inbound frames only keep the connection alive; all writes flow through
	// the REST surface. A read error means the client went away.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("realtime: user %d disconnected", userID)
}
