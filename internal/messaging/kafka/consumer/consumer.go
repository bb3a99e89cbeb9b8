package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"payroll-pro/internal/events"
	"payroll-pro/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader dipenuhi oleh *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeNotifications meneruskan event notifikasi dari API ke sink (mis. Slack).
func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	sink notification.Sink,
	logger *zap.Logger,
) {
	consume(ctx, reader, logger.Named("kafka.consumer.notification"), func(msg kafkago.Message) (bool, error) {
		var event events.NotificationRaisedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return false, err
		}
		sev, ok := notification.ParseSeverity(event.Severity)
		if !ok {
			sev = notification.SeverityInfo
		}
		return true, sink.Notify(ctx, event.Message, sev)
	})
}

// ConsumeEmployeeLifecycle mengumumkan karyawan baru ke sink.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	sink notification.Sink,
	logger *zap.Logger,
) {
	consume(ctx, reader, logger.Named("kafka.consumer.employee_lifecycle"), func(msg kafkago.Message) (bool, error) {
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return false, err
		}
		text := fmt.Sprintf("Karyawan baru bergabung: %s (%s).", event.FullName, event.EmployeeIDNumber)
		return true, sink.Notify(ctx, text, notification.SeverityInfo)
	})
}

// consume menjalankan loop fetch-handle-commit. handle mengembalikan decoded=false
// untuk pesan rusak; pesan itu di-commit agar tidak diulang terus.
func consume(
	ctx context.Context,
	reader MessageReader,
	log *zap.Logger,
	handle func(msg kafkago.Message) (decoded bool, err error),
) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		decoded, err := handle(msg)
		if !decoded {
			log.Error("decode message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if err != nil {
			log.Error("handle message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
			continue
		}

		log.Debug("message handled", zap.String("topic", msg.Topic), zap.Int64("offset", msg.Offset))
	}
}
