package employee

import (
	"context"

	"payroll-pro/internal/events"
	"payroll-pro/internal/messaging/kafka"
	"payroll-pro/internal/shared/contextutil"
)

type EventPublisher interface {
	PublishEmployeeCreated(ctx context.Context, event events.EmployeeCreatedEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishEmployeeCreated(context.Context, events.EmployeeCreatedEvent) error {
	return nil
}

type outboxEventPublisher struct {
	outbox kafka.OutboxRepository
}

// NewOutboxEventPublisher menaruh event ke outbox; worker producer yang mengirimnya ke Kafka.
func NewOutboxEventPublisher(outbox kafka.OutboxRepository) EventPublisher {
	if outbox == nil {
		return noopEventPublisher{}
	}
	return &outboxEventPublisher{outbox: outbox}
}

func (p *outboxEventPublisher) PublishEmployeeCreated(ctx context.Context, event events.EmployeeCreatedEvent) error {
	outboxEvent, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		events.EmployeeCreatedTopic,
		"employee",
		event.EmployeeID,
		event.EventType,
		event,
	)
	if err != nil {
		return err
	}
	return p.outbox.Create(ctx, outboxEvent)
}
