package store

import "payroll-pro/internal/domain"

// State adalah satu-satunya sumber kebenaran aplikasi. Nilai State yang sudah dikembalikan
// tidak pernah diubah di tempat; setiap action menghasilkan slice baru.
type State struct {
	Users       []domain.User
	Departments []domain.Department
	Positions   []domain.Position
	Employees   []domain.Employee
	Attendance  []domain.AttendanceRecord
	Payrolls    []domain.Payroll
	AuditLogs   []domain.AuditLog
	SystemInfo  domain.SystemInfo
}

func (s State) FindUser(id string) (domain.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s State) FindEmployee(id string) (domain.Employee, bool) {
	for _, e := range s.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Employee{}, false
}

func (s State) EmployeeByUserID(userID string) (domain.Employee, bool) {
	for _, e := range s.Employees {
		if e.UserID == userID {
			return e, true
		}
	}
	return domain.Employee{}, false
}

func (s State) FindDepartment(id string) (domain.Department, bool) {
	for _, d := range s.Departments {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Department{}, false
}

func (s State) FindPosition(id string) (domain.Position, bool) {
	for _, p := range s.Positions {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Position{}, false
}

func (s State) FindPayroll(id string) (domain.Payroll, bool) {
	for _, p := range s.Payrolls {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Payroll{}, false
}

func (s State) FindAttendance(id string) (domain.AttendanceRecord, bool) {
	for _, a := range s.Attendance {
		if a.ID == id {
			return a, true
		}
	}
	return domain.AttendanceRecord{}, false
}

// AttendanceFor mencari baris absensi karyawan pada tanggal tertentu (YYYY-MM-DD).
func (s State) AttendanceFor(employeeID, date string) (domain.AttendanceRecord, bool) {
	for _, a := range s.Attendance {
		if a.EmployeeID == employeeID && a.Date == date {
			return a, true
		}
	}
	return domain.AttendanceRecord{}, false
}
