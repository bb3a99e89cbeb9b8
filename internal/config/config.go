package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Redis       RedisConfig
	Session     SessionConfig
	Kafka       KafkaConfig
	Slack       SlackConfig
	History     HistoryConfig
	RateLimit   RateLimitConfig
	CORSOrigins []string
}

type AppConfig struct {
	Port     string
	Env      string
	Timezone *time.Location
}

type RedisConfig struct {
	Addr string
}

// SessionConfig mengatur token session yang disimpan di Redis.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type KafkaConfig struct {
	Broker            string
	NotificationTopic string
	ConsumerGroup     string
}

type SlackConfig struct {
	WebhookURL string
}

// HistoryConfig mengatur sintesis riwayat absensi & penggajian saat startup.
// Seed 0 berarti acak setiap kali aplikasi dijalankan.
type HistoryConfig struct {
	Seed   int64
	Months []string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load membaca .env (jika ada) lalu environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	seed, err := strconv.ParseInt(getEnv("HISTORY_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_SEED: %w", err)
	}

	months := splitList(getEnv("HISTORY_MONTHS", "2025-08,2025-09,2025-10"))
	for _, m := range months {
		if _, err := time.Parse("2006-01", m); err != nil {
			return nil, fmt.Errorf("invalid HISTORY_MONTHS entry %q: %w", m, err)
		}
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	return &Config{
		App: AppConfig{
			Port:     getEnv("APP_PORT", "3000"),
			Env:      getEnv("APP_ENV", "development"),
			Timezone: loc,
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "payrollpro-dev-secret"),
			TTL:    ttl,
		},
		Kafka: KafkaConfig{
			Broker:            os.Getenv("KAFKA_BROKER"),
			NotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "payroll.notification.raised.v1"),
			ConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "payroll-pro-notification-log"),
		},
		Slack: SlackConfig{
			WebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
		},
		History: HistoryConfig{
			Seed:   seed,
			Months: months,
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
