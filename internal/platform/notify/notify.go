package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the toast severity
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// DisplayTTL is how long a toast stays visible before auto-dismissal
const DisplayTTL = 3 * time.Second

// Notification is one transient toast message
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Bus is the process-wide queue of transient notifications. Any component
// may enqueue (fire and forget); consumers read the still-active set and
// expired entries are pruned on read.
type Bus struct {
	mu      sync.Mutex
	queue   []Notification
	ttl     time.Duration
	nowFunc func() time.Time
}

// NewBus creates a notification bus with the default display TTL
func NewBus() *Bus {
	return &Bus{
		ttl:     DisplayTTL,
		nowFunc: time.Now,
	}
}

// NewBusWithClock creates a bus with a custom TTL and clock, for tests
func NewBusWithClock(ttl time.Duration, now func() time.Time) *Bus {
	return &Bus{
		ttl:     ttl,
		nowFunc: now,
	}
}

// Push enqueues a notification and returns its id
func (b *Bus) Push(level Level, message string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.nowFunc()
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	}
	b.queue = append(b.queue, n)
	return n.ID
}

// Success enqueues a success toast
func (b *Bus) Success(message string) { b.Push(LevelSuccess, message) }

// Error enqueues an error toast
func (b *Bus) Error(message string) { b.Push(LevelError, message) }

// Info enqueues an info toast
func (b *Bus) Info(message string) { b.Push(LevelInfo, message) }

// Active returns the not-yet-dismissed notifications in enqueue order,
// pruning expired ones from the queue.
func (b *Bus) Active() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.nowFunc()
	live := b.queue[:0]
	for _, n := range b.queue {
		if n.ExpiresAt.After(now) {
			live = append(live, n)
		}
	}
	b.queue = live

	out := make([]Notification, len(live))
	copy(out, live)
	return out
}

// Dismiss drops a notification before its TTL elapses
func (b *Bus) Dismiss(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, n := range b.queue {
		if n.ID == id {
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
			return true
		}
	}
	return false
}
