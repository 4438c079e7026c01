package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Feed holds the single notification currently on screen. A new notification
// replaces the previous one; each is dismissed after the configured TTL.
type Feed struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	current *Notification
	timer   *time.Timer
	closed  bool
}

func NewFeed(ttl time.Duration) *Feed {
	return &Feed{ttl: ttl, now: time.Now}
}

func (f *Feed) Notify(_ context.Context, message string, kind Kind) {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: f.now(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.current = &n
	if f.ttl > 0 {
		id := n.ID
		f.timer = time.AfterFunc(f.ttl, func() { f.dismiss(id) })
	}
}

func (f *Feed) dismiss(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current != nil && f.current.ID == id {
		f.current = nil
		f.timer = nil
	}
}

// Active returns the notifications currently displayed (zero or one).
func (f *Feed) Active() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return []Notification{}
	}
	return []Notification{*f.current}
}

// Close stops the pending dismissal timer. Later notifications are dropped.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
