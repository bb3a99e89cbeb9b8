package attendance

import (
	"context"

	attendanceerrors "payroll-pro/internal/attendance/errors"
	"payroll-pro/internal/domain"
	"payroll-pro/internal/store"
)

// TransitionFunc menerima baris yang ada (nil jika belum ada) dan mengembalikan
// baris baru untuk disimpan.
type TransitionFunc func(existing *domain.AttendanceRecord) (domain.AttendanceRecord, error)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.AttendanceRecord, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*domain.AttendanceRecord, error)
	// Transition menjalankan fn dan menyimpan hasilnya secara atomik.
	Transition(ctx context.Context, employeeID, date string, fn TransitionFunc) (domain.AttendanceRecord, error)

	EmployeeNames(ctx context.Context) (map[string]string, error)
	EmployeeIDByUserID(ctx context.Context, userID string) (string, bool, error)
}

type repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) FindAll(ctx context.Context) ([]domain.AttendanceRecord, error) {
	return r.store.Snapshot().Attendance, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*domain.AttendanceRecord, error) {
	rec, ok := r.store.Snapshot().AttendanceFor(employeeID, date)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *repository) Transition(ctx context.Context, employeeID, date string, fn TransitionFunc) (domain.AttendanceRecord, error) {
	var saved domain.AttendanceRecord
	_, err := r.store.Update(func(s store.State) (store.Action, error) {
		if _, ok := s.FindEmployee(employeeID); !ok {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}

		var existing *domain.AttendanceRecord
		if rec, ok := s.AttendanceFor(employeeID, date); ok {
			existing = &rec
		}

		next, err := fn(existing)
		if err != nil {
			return nil, err
		}
		saved = next
		return store.UpsertAttendance{Record: next}, nil
	})
	return saved, err
}

func (r *repository) EmployeeNames(ctx context.Context) (map[string]string, error) {
	views := r.store.Snapshot().EmployeeViews()
	out := make(map[string]string, len(views))
	for _, v := range views {
		out[v.ID] = v.User.FullName
	}
	return out, nil
}

func (r *repository) EmployeeIDByUserID(ctx context.Context, userID string) (string, bool, error) {
	e, ok := r.store.Snapshot().EmployeeByUserID(userID)
	if !ok {
		return "", false, nil
	}
	return e.ID, true, nil
}
