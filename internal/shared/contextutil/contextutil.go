package contextutil

import (
	"context"

	"payroll-pro/internal/domain"

	"go.uber.org/zap"
)

// contextKey tipe privat agar tidak bentrok dengan key library lain
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	viewerKey    contextKey = "viewer"
	loggerKey    contextKey = "logger"
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// Viewer adalah user yang sedang login menurut session. Hanya dipakai untuk tampilan
// (scoping list, dashboard), bukan untuk menolak request.
type Viewer struct {
	UserID string
	Role   domain.Role
}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// GetViewer mengembalikan viewer dan false jika request tanpa session.
func GetViewer(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(viewerKey).(Viewer)
	return v, ok
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger mengambil logger dari context, fallback ke defaultLogger lalu zap.L().
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.L()
}

type Metadata struct {
	RequestID string
	UserID    string
}

func ExtractMetadata(ctx context.Context) Metadata {
	v, _ := GetViewer(ctx)
	return Metadata{
		RequestID: GetRequestID(ctx),
		UserID:    v.UserID,
	}
}
