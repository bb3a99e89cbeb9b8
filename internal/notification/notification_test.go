package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"payroll-pro/internal/events"
	"payroll-pro/internal/messaging/kafka"
	"payroll-pro/internal/notification"
	"payroll-pro/internal/shared/contextutil"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSink struct {
	notifyFn func(ctx context.Context, message string, severity notification.Severity) error
	calls    int
}

func (f *fakeSink) Notify(ctx context.Context, message string, severity notification.Severity) error {
	f.calls++
	if f.notifyFn != nil {
		return f.notifyFn(ctx, message, severity)
	}
	return nil
}

func TestFeed_KeepsNewestFirstWithinLimit(t *testing.T) {
	feed := notification.NewFeed(2)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		assert.NoError(t, feed.Notify(ctx, fmt.Sprintf("msg-%d", i), notification.SeverityInfo))
	}

	recent := feed.Recent()
	assert.Len(t, recent, 2)
	assert.Equal(t, "msg-3", recent[0].Message)
	assert.Equal(t, "msg-2", recent[1].Message)
}

func TestMulti_ContinuesAfterFailure(t *testing.T) {
	failing := &fakeSink{notifyFn: func(ctx context.Context, message string, severity notification.Severity) error {
		return errors.New("down")
	}}
	ok := &fakeSink{}

	err := notification.Multi(failing, nil, ok).Notify(context.Background(), "hi", notification.SeveritySuccess)

	assert.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)
}

func TestEmit_SwallowsError(t *testing.T) {
	failing := &fakeSink{notifyFn: func(ctx context.Context, message string, severity notification.Severity) error {
		return errors.New("down")
	}}
	ctx := contextutil.WithLogger(context.Background(), zap.NewNop())

	assert.NotPanics(t, func() {
		notification.Emit(ctx, failing, "hi", notification.SeverityError)
		notification.Emit(ctx, nil, "hi", notification.SeverityError)
	})
	assert.Equal(t, 1, failing.calls)
}

func TestKafkaSink_WritesOutbox(t *testing.T) {
	outbox := kafka.NewMemoryOutbox(10)
	sink := notification.NewKafkaSink(outbox, "")
	ctx := contextutil.WithRequestID(context.Background(), "req-9")

	err := sink.Notify(ctx, "Data penggajian telah dihapus.", notification.SeverityInfo)
	assert.NoError(t, err)

	pending, _ := outbox.ListPending(ctx, 10)
	assert.Len(t, pending, 1)
	assert.Equal(t, events.NotificationRaisedTopic, pending[0].Topic)
	assert.Equal(t, "req-9", pending[0].RequestID)

	var event events.NotificationRaisedEvent
	assert.NoError(t, json.Unmarshal(pending[0].Payload, &event))
	assert.Equal(t, "Data penggajian telah dihapus.", event.Message)
	assert.Equal(t, "info", event.Severity)
}

func TestSlackSink(t *testing.T) {
	var got *slack.WebhookMessage
	sink := notification.NewSlackSinkWithPoster("https://hooks.example/x", func(ctx context.Context, url string, msg *slack.WebhookMessage) error {
		assert.Equal(t, "https://hooks.example/x", url)
		got = msg
		return nil
	})

	err := sink.Notify(context.Background(), "Karyawan baru berhasil ditambahkan.", notification.SeveritySuccess)

	assert.NoError(t, err)
	assert.Equal(t, "[PayrollPro] Karyawan baru berhasil ditambahkan.", got.Text)
	assert.Equal(t, "good", got.Attachments[0].Color)
}

func TestParseSeverity(t *testing.T) {
	sev, ok := notification.ParseSeverity("error")
	assert.True(t, ok)
	assert.Equal(t, notification.SeverityError, sev)

	_, ok = notification.ParseSeverity("warning")
	assert.False(t, ok)
}
