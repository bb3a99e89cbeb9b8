package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/shared/contextutil"
	"payroll-pro/internal/shared/currency"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ScopeAll = "all"
	ScopeOwn = "own"
)

var (
	shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
	longMonths  = [...]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}
	weekdays    = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
)

// CapabilityChecker dipenuhi oleh rbac.Service.
type CapabilityChecker interface {
	Can(role domain.Role, resource, action string) bool
}

type Service interface {
	Get(ctx context.Context) (DashboardResponse, error)
}

type service struct {
	repo Repository
	caps CapabilityChecker
	sf   *singleflight.Group
	now  func() time.Time
}

func NewService(repo Repository, caps CapabilityChecker, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, caps: caps, sf: &singleflight.Group{}, now: now}
}

// Get: tanpa session dianggap melihat seluruh data, sama seperti list lain.
func (s *service) Get(ctx context.Context) (DashboardResponse, error) {
	viewer, hasViewer := contextutil.GetViewer(ctx)
	scope := ScopeAll
	if hasViewer && s.caps != nil && !s.caps.Can(viewer.Role, "dashboard", "read_all") {
		scope = ScopeOwn
	}

	key := "dashboard:" + scope
	if scope == ScopeOwn {
		key += ":" + viewer.UserID
	}

	v, err, shared := s.sf.Do(key, func() (interface{}, error) {
		if scope == ScopeOwn {
			return s.employeeDashboard(ctx, viewer.UserID)
		}
		return s.summaryDashboard(ctx)
	})
	if err != nil {
		return DashboardResponse{}, err
	}
	if shared {
		contextutil.GetLogger(ctx, nil).Debug("dashboard computation shared", zap.String("key", key))
	}

	resp := v.(DashboardResponse)
	resp.Today = formatToday(s.now())
	resp.Greeting = "Halo"
	if hasViewer {
		if u, ok := s.repo.FindUser(ctx, viewer.UserID); ok {
			resp.Greeting = "Halo, " + firstName(u.FullName)
		}
	}
	return resp, nil
}

func (s *service) summaryDashboard(ctx context.Context) (DashboardResponse, error) {
	payrolls, err := s.repo.Payrolls(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}
	count, err := s.repo.EmployeeCount(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	stats := SummaryStats{TotalEmployees: count}
	for _, p := range payrolls {
		stats.TotalPayroll += p.NetSalary
		if p.Status == domain.PayrollSubmitted {
			stats.PendingApprovals++
		}
	}
	stats.TotalPayrollLabel = currency.FormatIDR(stats.TotalPayroll)

	return DashboardResponse{Scope: ScopeAll, Summary: &stats, Chart: monthlyTotals(payrolls)}, nil
}

func (s *service) employeeDashboard(ctx context.Context, userID string) (DashboardResponse, error) {
	stats := EmployeeStats{LastMonth: "N/A"}
	var own []domain.Payroll

	if empID, ok := s.repo.EmployeeIDByUserID(ctx, userID); ok {
		payrolls, err := s.repo.Payrolls(ctx)
		if err != nil {
			return DashboardResponse{}, err
		}
		for _, p := range payrolls {
			if p.EmployeeID == empID {
				own = append(own, p)
			}
		}
	}

	var latest *domain.Payroll
	for i := range own {
		stats.TotalReceived += own[i].NetSalary
		if latest == nil || isLater(own[i], *latest) {
			latest = &own[i]
		}
	}
	if latest != nil {
		stats.LatestSalary = latest.NetSalary
		stats.LastMonth = latest.Month
	}
	stats.LatestSalaryLabel = currency.FormatIDR(stats.LatestSalary)
	stats.TotalReceivedLabel = currency.FormatIDR(stats.TotalReceived)

	return DashboardResponse{Scope: ScopeOwn, Employee: &stats, Chart: monthlyTotals(own)}, nil
}

func isLater(a, b domain.Payroll) bool {
	if a.Month != b.Month {
		return a.Month > b.Month
	}
	return a.IssueDate > b.IssueDate
}

func monthlyTotals(payrolls []domain.Payroll) []MonthlyTotal {
	byMonth := map[string]int64{}
	for _, p := range payrolls {
		byMonth[p.Month] += p.NetSalary
	}

	out := make([]MonthlyTotal, 0, len(byMonth))
	for month, amount := range byMonth {
		out = append(out, MonthlyTotal{
			Month:       month,
			Label:       monthLabel(month),
			Amount:      amount,
			AmountLabel: currency.FormatShort(amount),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func monthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return shortMonths[t.Month()-1]
}

// formatToday meniru toLocaleDateString id-ID, mis. "Sabtu, 18 Oktober 2025".
func formatToday(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", weekdays[t.Weekday()], t.Day(), longMonths[t.Month()-1], t.Year())
}

func firstName(full string) string {
	if fields := strings.Fields(full); len(fields) > 0 {
		return fields[0]
	}
	return full
}
