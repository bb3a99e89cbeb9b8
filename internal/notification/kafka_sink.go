package notification

import (
	"context"
	"time"

	"payroll-pro/internal/events"
	"payroll-pro/internal/messaging/kafka"
	"payroll-pro/internal/shared/contextutil"
)

type kafkaSink struct {
	outbox kafka.OutboxRepository
	topic  string
	now    func() time.Time
}

// NewKafkaSink menaruh event di outbox; pengiriman ke broker dikerjakan worker
// producer di background.
func NewKafkaSink(outbox kafka.OutboxRepository, topic string) Sink {
	if topic == "" {
		topic = events.NotificationRaisedTopic
	}
	return &kafkaSink{outbox: outbox, topic: topic, now: time.Now}
}

func (s *kafkaSink) Notify(ctx context.Context, message string, severity Severity) error {
	requestID := contextutil.GetRequestID(ctx)
	event := events.NotificationRaisedEvent{
		EventType:  "notification_raised",
		Message:    message,
		Severity:   string(severity),
		RequestID:  requestID,
		OccurredAt: s.now().UTC(),
	}

	outboxEvent, err := kafka.NewOutboxEvent(requestID, s.topic, "notification", string(severity), event.EventType, event)
	if err != nil {
		return err
	}
	return s.outbox.Create(ctx, outboxEvent)
}
