package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

const maxRetryBackoff = 10

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
	ErrorMessage  string
}

// OutboxRepository menampung event sebelum dikirim ke Kafka, sehingga request
// HTTP tidak pernah menunggu broker.
type OutboxRepository interface {
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

var ErrOutboxFull = errors.New("outbox is full")

type memoryOutbox struct {
	mu       sync.Mutex
	capacity int
	events   []OutboxEvent
	now      func() time.Time
}

// NewMemoryOutbox membuat outbox in-memory berkapasitas tetap. Event yang sudah
// terkirim dibuang dari antrean.
func NewMemoryOutbox(capacity int) OutboxRepository {
	if capacity <= 0 {
		capacity = 1000
	}
	return &memoryOutbox{capacity: capacity, now: time.Now}
}

func (r *memoryOutbox) Create(ctx context.Context, event OutboxEvent) error {
	if event.Status == "" {
		event.Status = OutboxStatusPending
	}
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) >= r.capacity {
		return ErrOutboxFull
	}
	r.events = append(r.events, event)
	return nil
}

func (r *memoryOutbox) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	out := make([]OutboxEvent, 0, limit)
	for _, e := range r.events {
		if len(out) >= limit {
			break
		}
		if e.Status == OutboxStatusSent {
			continue
		}
		if !e.NextRetryAt.IsZero() && e.NextRetryAt.After(now) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memoryOutbox) MarkSent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.events {
		if e.ID == id {
			r.events = append(r.events[:i:i], r.events[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("outbox event %s not found", id)
}

func (r *memoryOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID != id {
			continue
		}
		e := &r.events[i]
		e.Status = OutboxStatusFailed
		e.RetryCount++
		if len(reason) > 500 {
			reason = reason[:500]
		}
		e.ErrorMessage = reason
		e.NextRetryAt = r.now().Add(time.Duration(min(e.RetryCount, maxRetryBackoff)) * 15 * time.Second)
		return nil
	}
	return fmt.Errorf("outbox event %s not found", id)
}

// NewOutboxEvent meng-encode payload ke JSON dan menyiapkan event pending.
func NewOutboxEvent(requestID, topic, aggregateType, aggregateID, eventType string, payload any) (OutboxEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, err
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       raw,
		Status:        OutboxStatusPending,
	}, nil
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
