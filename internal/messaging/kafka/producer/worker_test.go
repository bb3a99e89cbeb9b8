package producer_test

import (
	"context"
	"errors"
	"testing"

	"payroll-pro/internal/messaging/kafka"
	"payroll-pro/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeWriter struct {
	writeFn func(ctx context.Context, msgs ...kafkago.Message) error
	sent    []kafkago.Message
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if f.writeFn != nil {
		if err := f.writeFn(ctx, msgs...); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func TestProcessPendingEvents_Sends(t *testing.T) {
	ctx := context.Background()
	repo := kafka.NewMemoryOutbox(10)
	event, err := kafka.NewOutboxEvent("req-1", "topic.a", "payroll", "pr-1", "notification_raised", map[string]string{"message": "ok"})
	assert.NoError(t, err)
	assert.NoError(t, repo.Create(ctx, event))

	writer := &fakeWriter{}
	err = producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Len(t, writer.sent, 1)
	assert.Equal(t, "topic.a", writer.sent[0].Topic)
	assert.Equal(t, []byte("pr-1"), writer.sent[0].Key)
	assert.JSONEq(t, `{"message":"ok"}`, string(writer.sent[0].Value))
	assert.Contains(t, writer.sent[0].Headers, kafkago.Header{Key: "request_id", Value: []byte("req-1")})

	pending, _ := repo.ListPending(ctx, 10)
	assert.Empty(t, pending)
}

func TestProcessPendingEvents_FailureKeepsEvent(t *testing.T) {
	ctx := context.Background()
	repo := kafka.NewMemoryOutbox(10)
	event, _ := kafka.NewOutboxEvent("", "topic.a", "employee", "e1", "employee_created", map[string]string{})
	assert.NoError(t, repo.Create(ctx, event))

	writer := &fakeWriter{writeFn: func(ctx context.Context, msgs ...kafkago.Message) error {
		return errors.New("broker unavailable")
	}}
	err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Empty(t, writer.sent)
}
