package attendance

import (
	"context"
	"sort"
	"strings"
	"time"

	attendanceerrors "payroll-pro/internal/attendance/errors"
	"payroll-pro/internal/domain"
	"payroll-pro/internal/notification"
	"payroll-pro/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// jam kerja selesai; setiap jam penuh setelahnya dihitung lembur
	workdayEndHour = 17

	writeNotification = "Data absensi berhasil diperbarui secara real-time."
)

// CapabilityChecker dipenuhi oleh rbac.Service.
type CapabilityChecker interface {
	Can(role domain.Role, resource, action string) bool
}

type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, filter GetAttendancesFilterRequest) ([]AttendanceResponse, error)
	Today(ctx context.Context, employeeID string) (TodayResponse, error)
}

type service struct {
	repo     Repository
	caps     CapabilityChecker
	notifier notification.Sink
	now      func() time.Time
}

// now sebaiknya sudah berada di zona waktu kantor.
func NewService(repo Repository, caps CapabilityChecker, notifier notification.Sink, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, caps: caps, notifier: notifier, now: now}
}

func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error) {
	if strings.TrimSpace(req.ProofImage) == "" {
		return AttendanceResponse{}, attendanceerrors.ErrProofRequired
	}
	employeeID, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	date, clock, err := s.dateAndClock(req.Date, req.Time)
	if err != nil {
		return AttendanceResponse{}, err
	}

	log := contextutil.GetLogger(ctx, nil).With(
		zap.String("employee_id", employeeID),
		zap.String("date", date),
	)

	rec, err := s.repo.Transition(ctx, employeeID, date, func(existing *domain.AttendanceRecord) (domain.AttendanceRecord, error) {
		switch StateOf(existing) {
		case StateCheckedIn, StateCheckedOut:
			return domain.AttendanceRecord{}, attendanceerrors.ErrAlreadyCheckedIn
		}

		next := domain.AttendanceRecord{
			ID:         "att-" + uuid.NewString(),
			EmployeeID: employeeID,
			Date:       date,
		}
		if existing != nil {
			// baris absen/cuti hari ini di-upgrade, bukan diduplikasi
			next = *existing
		}
		next.Status = domain.AttendancePresent
		next.CheckIn = clock
		next.CheckOut = ""
		next.ProofImage = req.ProofImage
		return next, nil
	})
	if err != nil {
		log.Warn("check-in rejected", zap.Error(err))
		return AttendanceResponse{}, err
	}

	log.Info("check-in recorded", zap.String("attendance_id", rec.ID), zap.String("check_in", rec.CheckIn))
	notification.Emit(ctx, s.notifier, writeNotification, notification.SeveritySuccess)

	return s.toResponse(ctx, rec), nil
}

func (s *service) CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error) {
	if strings.TrimSpace(req.ProofImage) == "" {
		return AttendanceResponse{}, attendanceerrors.ErrProofRequired
	}
	employeeID, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	date, clock, err := s.dateAndClock(req.Date, req.Time)
	if err != nil {
		return AttendanceResponse{}, err
	}

	log := contextutil.GetLogger(ctx, nil).With(
		zap.String("employee_id", employeeID),
		zap.String("date", date),
	)

	rec, err := s.repo.Transition(ctx, employeeID, date, func(existing *domain.AttendanceRecord) (domain.AttendanceRecord, error) {
		var next domain.AttendanceRecord

		switch StateOf(existing) {
		case StateCheckedOut:
			return domain.AttendanceRecord{}, attendanceerrors.ErrAlreadyCheckedOut
		case StateCheckedIn:
			next = *existing
		default:
			if !req.Confirm {
				return domain.AttendanceRecord{}, attendanceerrors.ErrCheckInMissing
			}
			if existing != nil {
				next = *existing
			} else {
				next = domain.AttendanceRecord{
					ID:         "att-" + uuid.NewString(),
					EmployeeID: employeeID,
					Date:       date,
				}
			}
			next.Status = domain.AttendancePresent
			next.CheckIn = CheckInUnavailable
		}

		next.CheckOut = clock
		next.CheckOutProofImage = req.ProofImage
		next.OvertimeHours = overtimeHours(clock)
		return next, nil
	})
	if err != nil {
		log.Warn("check-out rejected", zap.Error(err))
		return AttendanceResponse{}, err
	}

	log.Info("check-out recorded",
		zap.String("attendance_id", rec.ID),
		zap.String("check_out", rec.CheckOut),
		zap.Int("overtime_hours", rec.OvertimeHours),
		zap.Bool("confirmed_without_check_in", rec.CheckIn == CheckInUnavailable),
	)
	notification.Emit(ctx, s.notifier, writeNotification, notification.SeveritySuccess)

	return s.toResponse(ctx, rec), nil
}

func (s *service) GetAll(ctx context.Context, filter GetAttendancesFilterRequest) ([]AttendanceResponse, error) {
	if filter.Date != "" {
		if _, err := time.Parse(dateLayout, filter.Date); err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
	}

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.repo.EmployeeNames(ctx)
	if err != nil {
		return nil, err
	}

	ownEmployeeID, scoped, err := s.ownScope(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		if scoped && r.EmployeeID != ownEmployeeID {
			continue
		}
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, AttendanceResponse{
			AttendanceRecord: r,
			EmployeeName:     names[r.EmployeeID],
			State:            StateOf(&r),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *service) Today(ctx context.Context, employeeID string) (TodayResponse, error) {
	employeeID, err := s.resolveEmployee(ctx, employeeID)
	if err != nil {
		return TodayResponse{}, err
	}
	date := s.now().Format(dateLayout)

	rec, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return TodayResponse{}, err
	}

	resp := TodayResponse{EmployeeID: employeeID, Date: date, State: StateOf(rec)}
	if rec != nil {
		r := s.toResponse(ctx, *rec)
		resp.Record = &r
	}
	return resp, nil
}

// resolveEmployee memakai employee_id dari request, atau karyawan milik viewer.
func (s *service) resolveEmployee(ctx context.Context, employeeID string) (string, error) {
	if employeeID = strings.TrimSpace(employeeID); employeeID != "" {
		return employeeID, nil
	}
	viewer, ok := contextutil.GetViewer(ctx)
	if !ok {
		return "", attendanceerrors.ErrEmployeeRequired
	}
	id, found, err := s.repo.EmployeeIDByUserID(ctx, viewer.UserID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", attendanceerrors.ErrEmployeeRequired
	}
	return id, nil
}

func (s *service) ownScope(ctx context.Context) (string, bool, error) {
	viewer, ok := contextutil.GetViewer(ctx)
	if !ok || s.caps == nil || s.caps.Can(viewer.Role, "attendance", "read_all") {
		return "", false, nil
	}
	empID, _, err := s.repo.EmployeeIDByUserID(ctx, viewer.UserID)
	if err != nil {
		return "", false, err
	}
	return empID, true, nil
}

func (s *service) dateAndClock(date, clock string) (string, string, error) {
	now := s.now()
	if date == "" {
		date = now.Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return "", "", attendanceerrors.ErrInvalidDate
	}
	if clock == "" {
		clock = now.Format(clockLayout)
	}
	return date, clock, nil
}

func (s *service) toResponse(ctx context.Context, rec domain.AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{AttendanceRecord: rec, State: StateOf(&rec)}
	names, err := s.repo.EmployeeNames(ctx)
	if err == nil {
		resp.EmployeeName = names[rec.EmployeeID]
	}
	return resp
}

// overtimeHours = jam pulang dikurangi 17, minimal 0.
func overtimeHours(clock string) int {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0
	}
	return max(0, t.Hour()-workdayEndHour)
}
