package app

import (
	"context"
	"fmt"
	"sync"

	"payroll-pro/internal/config"
	"payroll-pro/internal/events"
	"payroll-pro/internal/messaging/kafka/consumer"
	"payroll-pro/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer membaca event notifikasi & siklus hidup karyawan dari Kafka lalu
// meneruskannya ke log dan Slack (jika dikonfigurasi). Berhenti saat ctx selesai.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	sinks := []notification.Sink{notification.NewLogSink(logger)}
	if cfg.Slack.WebhookURL != "" {
		sinks = append(sinks, notification.NewSlackSink(cfg.Slack.WebhookURL))
	} else {
		log.Warn("SLACK_WEBHOOK_URL kosong: notifikasi hanya ditulis ke log")
	}
	sink := notification.Multi(sinks...)

	notificationReader := newReader(cfg.Kafka.Broker, cfg.Kafka.NotificationTopic, cfg.Kafka.ConsumerGroup)
	defer notificationReader.Close()

	lifecycleReader := newReader(cfg.Kafka.Broker, events.EmployeeCreatedTopic, cfg.Kafka.ConsumerGroup+"-lifecycle")
	defer lifecycleReader.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeNotifications(ctx, notificationReader, sink, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, sink, logger)
	}()

	log.Info("consumer running",
		zap.String("broker", cfg.Kafka.Broker),
		zap.String("notification_topic", cfg.Kafka.NotificationTopic),
		zap.String("lifecycle_topic", events.EmployeeCreatedTopic),
	)

	<-ctx.Done()
	wg.Wait()
	log.Info("consumer shutting down")
	return nil
}

func newReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
