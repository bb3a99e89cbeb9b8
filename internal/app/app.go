package app

import (
	"context"
	"fmt"
	"time"

	"payroll-pro/internal/bootstrap"
	"payroll-pro/internal/config"
	"payroll-pro/internal/history"
	"payroll-pro/internal/messaging/kafka"
	"payroll-pro/internal/messaging/kafka/producer"
	"payroll-pro/internal/mockdata"
	"payroll-pro/internal/notification"
	"payroll-pro/internal/shared/connection"
	"payroll-pro/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	outboxCapacity     = 1000
	feedLimit          = 50
	outboxPollInterval = 3 * time.Second
)

// App menyimpan dependency yang harus dibereskan saat shutdown.
type App struct {
	Store       *store.Store
	Redis       *redis.Client
	Outbox      kafka.OutboxRepository // nil jika KAFKA_BROKER kosong
	Feed        *notification.Feed
	AuditLogger bootstrap.AuditLogger

	logger      *zap.Logger
	kafkaWriter *kafkago.Writer
	stopWorker  context.CancelFunc
	workerDone  chan struct{}
}

// BuildApp menyiapkan state awal, infrastruktur opsional (Redis, Kafka, Slack)
// lalu mendaftarkan semua route ke router.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*App, error) {
	log := logger.Named("app")

	st, err := seedStore(cfg, time.Now())
	if err != nil {
		return nil, err
	}
	snap := st.Snapshot()
	log.Info("state seeded",
		zap.Int("employees", len(snap.Employees)),
		zap.Int("attendance", len(snap.Attendance)),
		zap.Int("payrolls", len(snap.Payrolls)),
	)

	a := &App{
		Store:  st,
		Feed:   notification.NewFeed(feedLimit),
		logger: log,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(ctx, cfg.Redis.Addr, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		a.Redis = rdb
		log.Info("✅ Redis connection established")
	} else {
		log.Warn("REDIS_ADDR kosong: session disimpan in-memory, cache & idempotency nonaktif")
	}

	sinks := []notification.Sink{a.Feed, notification.NewLogSink(logger)}
	if cfg.Kafka.Broker != "" {
		writer, err := connection.ConnectKafkaWithRetry(ctx, cfg.Kafka.Broker, 5, 2*time.Second)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.kafkaWriter = writer
		a.Outbox = kafka.NewMemoryOutbox(outboxCapacity)
		sinks = append(sinks, notification.NewKafkaSink(a.Outbox, cfg.Kafka.NotificationTopic))
		a.startOutboxWorker(logger)
		log.Info("✅ Kafka outbox worker started", zap.String("broker", cfg.Kafka.Broker))
	}
	if cfg.Slack.WebhookURL != "" {
		sinks = append(sinks, notification.NewSlackSink(cfg.Slack.WebhookURL))
	}

	a.AuditLogger = bootstrap.MultiAuditLogger(
		bootstrap.NewStdoutAuditLogger(logger),
		bootstrap.NewStoreAuditLogger(st, nil),
	)

	if err := registerModules(router, cfg, logger, a, notification.Multi(sinks...)); err != nil {
		a.Shutdown(ctx)
		return nil, err
	}
	return a, nil
}

// seedStore memuat dataset bawaan lalu mensintesis riwayat absensi & gaji.
func seedStore(cfg *config.Config, now time.Time) (*store.Store, error) {
	ds, err := mockdata.Load()
	if err != nil {
		return nil, err
	}

	rules := history.DefaultRules()
	rules.ProofImages = ds.ProofImages

	loc := cfg.App.Timezone
	if loc == nil {
		loc = time.Local
	}
	res, err := history.New(history.NewRand(cfg.History.Seed), rules).
		Generate(ds.Employees, cfg.History.Months, now.In(loc).Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("generate history: %w", err)
	}

	st := store.New(ds.State())
	st.Dispatch(store.Seed{Attendance: res.Attendance, Payrolls: res.Payrolls})
	return st, nil
}

func (a *App) startOutboxWorker(logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWorker = cancel
	a.workerDone = make(chan struct{})
	go func() {
		defer close(a.workerDone)
		producer.ProcessOutboxEvents(ctx, a.Outbox, a.kafkaWriter, logger, outboxPollInterval)
	}()
}

// Shutdown menghentikan worker outbox (flush terakhir) lalu menutup koneksi.
func (a *App) Shutdown(ctx context.Context) {
	if a.stopWorker != nil {
		a.stopWorker()
		select {
		case <-a.workerDone:
		case <-ctx.Done():
			a.logger.Warn("outbox worker did not stop in time")
		}
	}
	a.Close()
}

func (a *App) Close() {
	if a.kafkaWriter != nil {
		if err := a.kafkaWriter.Close(); err != nil {
			a.logger.Warn("close kafka writer failed", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.logger.Warn("close redis failed", zap.Error(err))
		}
	}
}
