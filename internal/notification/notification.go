// Package notification menyalurkan pesan toast (sukses, gagal, info) ke satu
// atau beberapa tujuan. Kegagalan sink tidak pernah sampai ke pemanggil.
package notification

import (
	"context"
	"errors"

	"payroll-pro/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

func ParseSeverity(v string) (Severity, bool) {
	switch Severity(v) {
	case SeveritySuccess, SeverityError, SeverityInfo:
		return Severity(v), true
	default:
		return "", false
	}
}

type Sink interface {
	Notify(ctx context.Context, message string, severity Severity) error
}

// Emit mengirim ke sink dan hanya mencatat error-nya.
func Emit(ctx context.Context, sink Sink, message string, severity Severity) {
	if sink == nil {
		return
	}
	if err := sink.Notify(ctx, message, severity); err != nil {
		contextutil.GetLogger(ctx, nil).Warn("notification sink failed",
			zap.String("message", message),
			zap.String("severity", string(severity)),
			zap.Error(err),
		)
	}
}

type multi struct {
	sinks []Sink
}

// Multi meneruskan ke semua sink; satu sink gagal tidak menghentikan yang lain.
func Multi(sinks ...Sink) Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &multi{sinks: out}
}

func (m *multi) Notify(ctx context.Context, message string, severity Severity) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Notify(ctx, message, severity); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type logSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) Sink {
	return &logSink{logger: logger.Named("notification")}
}

func (s *logSink) Notify(ctx context.Context, message string, severity Severity) error {
	log := contextutil.GetLogger(ctx, s.logger)
	fields := []zap.Field{
		zap.String("severity", string(severity)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
	}
	if severity == SeverityError {
		log.Warn(message, fields...)
		return nil
	}
	log.Info(message, fields...)
	return nil
}
