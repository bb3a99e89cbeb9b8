package attendance_test

import (
	"context"
	"testing"
	"time"

	"payroll-pro/internal/attendance"
	attendanceerrors "payroll-pro/internal/attendance/errors"
	"payroll-pro/internal/domain"
	"payroll-pro/internal/notification"
	"payroll-pro/internal/shared/contextutil"
	"payroll-pro/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const proof = "data:image/jpeg;base64,/9j/4AAQSkZJRg=="

type fakeCaps struct {
	canFn func(role domain.Role, resource, action string) bool
}

func (f *fakeCaps) Can(role domain.Role, resource, action string) bool {
	return f.canFn(role, resource, action)
}

var jakarta = time.FixedZone("WIB", 7*3600)

func clockAt(hour, minute int) func() time.Time {
	return func() time.Time { return time.Date(2025, 10, 20, hour, minute, 0, 0, jakarta) }
}

func newState() store.State {
	return store.State{
		Users: []domain.User{
			{ID: "u1", FullName: "Rina Kartika", Role: domain.RoleEmployee},
			{ID: "u2", FullName: "Andi Saputra", Role: domain.RoleEmployee},
			{ID: "u9", FullName: "Alice Admin", Role: domain.RoleAdmin},
		},
		Employees: []domain.Employee{
			{ID: "e1", UserID: "u1", BaseSalary: 4000000},
			{ID: "e2", UserID: "u2", BaseSalary: 3000000},
		},
		Attendance: []domain.AttendanceRecord{
			{ID: "att-e2-2025-10-17", EmployeeID: "e2", Date: "2025-10-17", Status: domain.AttendancePresent, CheckIn: "08:55", CheckOut: "17:05"},
			{ID: "att-e2-leave", EmployeeID: "e2", Date: "2025-10-20", Status: domain.AttendanceOnLeave},
		},
	}
}

func newService(t *testing.T, now func() time.Time) (attendance.Service, *store.Store, *notification.Feed) {
	t.Helper()
	st := store.New(newState())
	feed := notification.NewFeed(10)
	return attendance.NewService(attendance.NewRepository(st), nil, feed, now), st, feed
}

func TestService_CheckIn(t *testing.T) {
	t.Run("first check-in creates present record", func(t *testing.T) {
		svc, st, feed := newService(t, clockAt(8, 50))

		resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "e1", ProofImage: proof})
		require.NoError(t, err)

		assert.Equal(t, "2025-10-20", resp.Date)
		assert.Equal(t, "08:50", resp.CheckIn)
		assert.Empty(t, resp.CheckOut)
		assert.Equal(t, domain.AttendancePresent, resp.Status)
		assert.Equal(t, attendance.StateCheckedIn, resp.State)
		assert.Equal(t, "Rina Kartika", resp.EmployeeName)
		assert.Len(t, st.Snapshot().Attendance, 3)
		assert.Equal(t, "Data absensi berhasil diperbarui secara real-time.", feed.Recent()[0].Message)

		// check-in kedua ditolak tanpa menambah baris
		_, err = svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "e1", ProofImage: proof})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
		assert.Len(t, st.Snapshot().Attendance, 3)
		assert.Len(t, feed.Recent(), 1)
	})

	t.Run("proof is required", func(t *testing.T) {
		svc, st, _ := newService(t, clockAt(8, 50))
		_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "e1"})
		assert.ErrorIs(t, err, attendanceerrors.ErrProofRequired)
		assert.Len(t, st.Snapshot().Attendance, 2)
	})

	t.Run("leave row is upgraded in place", func(t *testing.T) {
		svc, st, _ := newService(t, clockAt(9, 10))
		resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "e2", ProofImage: proof})
		require.NoError(t, err)
		assert.Equal(t, "att-e2-leave", resp.ID)
		assert.Equal(t, domain.AttendancePresent, resp.Status)
		assert.Len(t, st.Snapshot().Attendance, 2)
	})

	t.Run("resolves employee from viewer", func(t *testing.T) {
		svc, _, _ := newService(t, clockAt(8, 0))
		ctx := contextutil.WithViewer(context.Background(), contextutil.Viewer{UserID: "u1", Role: domain.RoleEmployee})
		resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{ProofImage: proof, Time: "07:58"})
		require.NoError(t, err)
		assert.Equal(t, "e1", resp.EmployeeID)
		assert.Equal(t, "07:58", resp.CheckIn)
	})

	t.Run("no employee and no session", func(t *testing.T) {
		svc, _, _ := newService(t, clockAt(8, 0))
		_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{ProofImage: proof})
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeRequired)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _, _ := newService(t, clockAt(8, 0))
		_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "e404", ProofImage: proof})
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})
}

func TestService_CheckOut(t *testing.T) {
	t.Run("late check-out records overtime", func(t *testing.T) {
		svc, st, _ := newService(t, clockAt(19, 5))
		_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "e1", ProofImage: proof, Time: "08:50"})
		require.NoError(t, err)

		resp, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "e1", ProofImage: proof})
		require.NoError(t, err)
		assert.Equal(t, "19:05", resp.CheckOut)
		assert.Equal(t, 2, resp.OvertimeHours)
		assert.Equal(t, proof, resp.CheckOutProofImage)
		assert.Equal(t, attendance.StateCheckedOut, resp.State)
		assert.Len(t, st.Snapshot().Attendance, 3)

		_, err = svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "e1", ProofImage: proof})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})

	t.Run("early check-out has no overtime", func(t *testing.T) {
		svc, _, _ := newService(t, clockAt(16, 30))
		_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "e1", ProofImage: proof, Time: "08:00"})
		require.NoError(t, err)

		resp, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "e1", ProofImage: proof})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.OvertimeHours)
	})

	t.Run("without check-in needs confirmation", func(t *testing.T) {
		svc, st, feed := newService(t, clockAt(17, 10))

		_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "e1", ProofImage: proof})
		assert.ErrorIs(t, err, attendanceerrors.ErrCheckInMissing)
		assert.Len(t, st.Snapshot().Attendance, 2)
		assert.Empty(t, feed.Recent())

		resp, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "e1", ProofImage: proof, Confirm: true})
		require.NoError(t, err)
		assert.Equal(t, attendance.CheckInUnavailable, resp.CheckIn)
		assert.Equal(t, "17:10", resp.CheckOut)
		assert.Equal(t, domain.AttendancePresent, resp.Status)
		assert.Len(t, st.Snapshot().Attendance, 3)
	})

	t.Run("proof is required", func(t *testing.T) {
		svc, _, _ := newService(t, clockAt(17, 10))
		_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "e1", Confirm: true})
		assert.ErrorIs(t, err, attendanceerrors.ErrProofRequired)
	})
}

func TestService_GetAll(t *testing.T) {
	svc, _, _ := newService(t, clockAt(8, 0))

	all, err := svc.GetAll(context.Background(), attendance.GetAttendancesFilterRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2025-10-20", all[0].Date)

	byDate, err := svc.GetAll(context.Background(), attendance.GetAttendancesFilterRequest{Date: "2025-10-17"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "Andi Saputra", byDate[0].EmployeeName)

	_, err = svc.GetAll(context.Background(), attendance.GetAttendancesFilterRequest{Date: "17-10-2025"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
}

func TestService_GetAll_ScopedToOwnRows(t *testing.T) {
	st := store.New(newState())
	caps := &fakeCaps{canFn: func(role domain.Role, resource, action string) bool {
		return role == domain.RoleAdmin || role == domain.RoleManager
	}}
	svc := attendance.NewService(attendance.NewRepository(st), caps, nil, clockAt(8, 0))

	ctx := contextutil.WithViewer(context.Background(), contextutil.Viewer{UserID: "u1", Role: domain.RoleEmployee})
	own, err := svc.GetAll(ctx, attendance.GetAttendancesFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, own)

	ctx = contextutil.WithViewer(context.Background(), contextutil.Viewer{UserID: "u9", Role: domain.RoleAdmin})
	all, err := svc.GetAll(ctx, attendance.GetAttendancesFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_Today(t *testing.T) {
	svc, _, _ := newService(t, clockAt(8, 0))

	resp, err := svc.Today(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNoRecord, resp.State)
	assert.Nil(t, resp.Record)

	resp, err = svc.Today(context.Background(), "e2")
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNoRecord, resp.State)
	require.NotNil(t, resp.Record)
	assert.Equal(t, domain.AttendanceOnLeave, resp.Record.Status)
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, attendance.StateNoRecord, attendance.StateOf(nil))
	assert.Equal(t, attendance.StateNoRecord, attendance.StateOf(&domain.AttendanceRecord{Status: domain.AttendanceAbsent}))
	assert.Equal(t, attendance.StateCheckedIn, attendance.StateOf(&domain.AttendanceRecord{CheckIn: "08:50"}))
	assert.Equal(t, attendance.StateCheckedOut, attendance.StateOf(&domain.AttendanceRecord{CheckIn: "-", CheckOut: "17:00"}))
}
