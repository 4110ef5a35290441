// Package notify holds the transient notification queue. Entries expire on
// their own after a fixed lifetime or leave early when dismissed.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/mission-tracker/internal/model"
)

// DefaultTTL is how long a notification stays active when not dismissed.
const DefaultTTL = 5 * time.Second

// Center owns the active notification set.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	newID   func() string
	entries []model.Notification
}

// Option configures a Center.
type Option func(*Center)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// WithIDGenerator overrides how notification IDs are minted.
func WithIDGenerator(gen func() string) Option {
	return func(c *Center) { c.newID = gen }
}

// New creates a Center whose notifications live for ttl.
func New(ttl time.Duration, opts ...Option) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Center{
		ttl:   ttl,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured lifetime.
func (c *Center) TTL() time.Duration { return c.ttl }

// Push records a notification and returns it with ID and timestamps filled.
func (c *Center) Push(typ model.NotificationType, title, message string) model.Notification {
	now := c.now()
	n := model.Notification{
		ID:        c.newID(),
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	c.entries = append(c.entries, n)
	c.mu.Unlock()

	return n
}

// Dismiss removes a notification immediately. Unknown IDs are ignored.
func (c *Center) Dismiss(id string) bool {
	return c.remove(id)
}

// Expire is the timer-side removal. It is a no-op when the notification
// was already dismissed.
func (c *Center) Expire(id string) bool {
	return c.remove(id)
}

func (c *Center) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.entries {
		if n.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Sweep drops every notification whose lifetime has elapsed and returns
// how many were removed.
func (c *Center) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.entries[:0]
	for _, n := range c.entries {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	removed := len(c.entries) - len(kept)
	c.entries = kept
	return removed
}

// Active returns the unexpired notifications, oldest first. Expired entries
// are excluded even if no sweep or timer has removed them yet.
func (c *Center) Active() []model.Notification {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Notification, 0, len(c.entries))
	for _, n := range c.entries {
		if !n.Expired(now) {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of stored entries, expired or not.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
