package realtime

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Dispatcher fans events out to users over the push transport. Delivery is
// best-effort and purely observational: no durable state is touched, publish
// failures are logged and swallowed, and the triggering write never fails
// because of them. Clients reconcile via pull (unread counts, notification
// list) on reconnect.
type Dispatcher struct {
	pub         Publisher
	maxInFlight int
	timeout     time.Duration
}

// Outcome reports a single delivery attempt. It is informational only.
type Outcome struct {
	UserID    uint `json:"user_id"`
	Delivered bool `json:"delivered"`
}

// Result aggregates a multi-recipient dispatch for observability.
type Result struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
}

func NewDispatcher(pub Publisher) *Dispatcher {
	return &Dispatcher{
		pub:         pub,
		maxInFlight: 16,
		timeout:     5 * time.Second,
	}
}

// NotifyUser pushes one event to the user's channel. A nil dispatcher or
// publisher (transport not configured) is a quiet non-delivery.
func (d *Dispatcher) NotifyUser(ctx context.Context, userID uint, event string, payload any) Outcome {
	if d == nil || d.pub == nil {
		return Outcome{UserID: userID}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.pub.Publish(ctx, UserChannel(userID), event, payload); err != nil {
		log.Printf("realtime: publish %s to user %d failed: %v", event, userID, err)
		return Outcome{UserID: userID}
	}
	return Outcome{UserID: userID, Delivered: true}
}

// NotifyMany attempts delivery to every user concurrently, bounded by
// maxInFlight, and waits for all attempts to settle. Partial failure never
// aborts the rest and the call itself never fails.
func (d *Dispatcher) NotifyMany(ctx context.Context, userIDs []uint, event string, payload any) Result {
	if d == nil || d.pub == nil || len(userIDs) == 0 {
		return Result{Attempted: len(userIDs)}
	}

	var delivered atomic.Int64
	sem := make(chan struct{}, d.maxInFlight)
	var wg sync.WaitGroup

	for _, userID := range userIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(userID uint) {
			defer wg.Done()
			defer func() { <-sem }()
			if d.NotifyUser(ctx, userID, event, payload).Delivered {
				delivered.Add(1)
			}
		}(userID)
	}
	wg.Wait()

	return Result{Attempted: len(userIDs), Delivered: int(delivered.Load())}
}
