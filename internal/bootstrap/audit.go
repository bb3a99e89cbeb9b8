package bootstrap

import (
	"context"
	"fmt"
	"time"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/store"

	"github.com/google/uuid"
)

// AuditLog adalah event siklus hidup server (start, shutdown).
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// StoreAuditLogger mencatat event server ke log audit in-memory, sehingga
// muncul di GET /system/audit-logs.
type StoreAuditLogger struct {
	store *store.Store
	now   func() time.Time
}

func NewStoreAuditLogger(s *store.Store, now func() time.Time) *StoreAuditLogger {
	if now == nil {
		now = time.Now
	}
	return &StoreAuditLogger{store: s, now: now}
}

func (l *StoreAuditLogger) Log(_ context.Context, entry AuditLog) {
	details := entry.Message
	if len(entry.Meta) > 0 {
		details = fmt.Sprintf("%s %v", entry.Message, entry.Meta)
	}
	l.store.Dispatch(store.AppendAuditLog{Entry: domain.AuditLog{
		ID:        "log-" + uuid.NewString(),
		Action:    entry.Action,
		User:      "system",
		Role:      domain.RoleAdmin,
		Timestamp: l.now().Format("2006-01-02 15:04"),
		Details:   details,
		Status:    "Success",
	}})
}

type multiAuditLogger []AuditLogger

// MultiAuditLogger meneruskan setiap event ke semua logger.
func MultiAuditLogger(loggers ...AuditLogger) AuditLogger {
	return multiAuditLogger(loggers)
}

func (m multiAuditLogger) Log(ctx context.Context, entry AuditLog) {
	for _, l := range m {
		l.Log(ctx, entry)
	}
}
