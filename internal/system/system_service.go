package system

import (
	"context"
	"sort"
	"strings"
	"time"

	"payroll-pro/internal/domain"
)

type Service interface {
	Info(ctx context.Context) (InfoResponse, error)
	AuditLogs(ctx context.Context, filter GetAuditLogsFilterRequest) ([]domain.AuditLog, error)
}

type service struct {
	repo      Repository
	env       string
	startedAt time.Time
	now       func() time.Time
}

func NewService(repo Repository, env string, startedAt time.Time) Service {
	return &service{repo: repo, env: env, startedAt: startedAt, now: time.Now}
}

func (s *service) Info(ctx context.Context) (InfoResponse, error) {
	info, err := s.repo.Info(ctx)
	if err != nil {
		return InfoResponse{}, err
	}
	return InfoResponse{
		SystemInfo:    info,
		ProcessUptime: s.now().Sub(s.startedAt).Truncate(time.Second).String(),
		Environment:   s.env,
	}, nil
}

// AuditLogs mengurutkan dari yang terbaru. Timestamp berformat "YYYY-MM-DD HH:MM"
// sehingga urutan string sama dengan urutan waktu.
func (s *service) AuditLogs(ctx context.Context, filter GetAuditLogsFilterRequest) ([]domain.AuditLog, error) {
	logs, err := s.repo.AuditLogs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AuditLog, 0, len(logs))
	for _, l := range logs {
		if filter.Status != "" && !strings.EqualFold(l.Status, filter.Status) {
			continue
		}
		if filter.Role != "" && string(l.Role) != filter.Role {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}
