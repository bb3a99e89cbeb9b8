package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Feed menyimpan notifikasi terbaru (paling baru di depan) dengan batas tetap.
type Feed struct {
	mu    sync.RWMutex
	limit int
	items []Notification
	now   func() time.Time
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 50
	}
	return &Feed{limit: limit, now: time.Now}
}

func (f *Feed) Notify(ctx context.Context, message string, severity Severity) error {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: f.now(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]Notification, 0, min(len(f.items)+1, f.limit))
	items = append(items, n)
	for _, it := range f.items {
		if len(items) >= f.limit {
			break
		}
		items = append(items, it)
	}
	f.items = items
	return nil
}

func (f *Feed) Recent() []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.items
}
