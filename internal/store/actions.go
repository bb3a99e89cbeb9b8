package store

import "payroll-pro/internal/domain"

// Action adalah reducer murni: menerima state lama, mengembalikan state baru.
type Action interface {
	Reduce(s State) State
}

// Batch menerapkan beberapa action sebagai satu perubahan state.
type Batch []Action

func (b Batch) Reduce(s State) State {
	for _, a := range b {
		s = a.Reduce(s)
	}
	return s
}

// --- Payroll ---

type AddPayroll struct{ Payroll domain.Payroll }

func (a AddPayroll) Reduce(s State) State {
	s.Payrolls = prepend(s.Payrolls, a.Payroll)
	return s
}

type UpdatePayroll struct{ Payroll domain.Payroll }

func (a UpdatePayroll) Reduce(s State) State {
	s.Payrolls = replaceWhere(s.Payrolls, a.Payroll, func(p domain.Payroll) bool { return p.ID == a.Payroll.ID })
	return s
}

type DeletePayroll struct{ ID string }

func (a DeletePayroll) Reduce(s State) State {
	s.Payrolls = removeWhere(s.Payrolls, func(p domain.Payroll) bool { return p.ID == a.ID })
	return s
}

// --- Employee ---

type AddEmployee struct{ Employee domain.Employee }

func (a AddEmployee) Reduce(s State) State {
	s.Employees = prepend(s.Employees, a.Employee)
	return s
}

type UpdateEmployee struct{ Employee domain.Employee }

func (a UpdateEmployee) Reduce(s State) State {
	s.Employees = replaceWhere(s.Employees, a.Employee, func(e domain.Employee) bool { return e.ID == a.Employee.ID })
	return s
}

// DeleteEmployee tidak menghapus akun user yang terhubung.
type DeleteEmployee struct{ ID string }

func (a DeleteEmployee) Reduce(s State) State {
	s.Employees = removeWhere(s.Employees, func(e domain.Employee) bool { return e.ID == a.ID })
	return s
}

// --- User ---

type AddUser struct{ User domain.User }

func (a AddUser) Reduce(s State) State {
	for _, u := range s.Users {
		if u.ID == a.User.ID {
			return s
		}
	}
	users := make([]domain.User, 0, len(s.Users)+1)
	users = append(users, s.Users...)
	s.Users = append(users, a.User)
	return s
}

type UpdateUser struct{ User domain.User }

func (a UpdateUser) Reduce(s State) State {
	s.Users = replaceWhere(s.Users, a.User, func(u domain.User) bool { return u.ID == a.User.ID })
	return s
}

type DeleteUser struct{ ID string }

func (a DeleteUser) Reduce(s State) State {
	s.Users = removeWhere(s.Users, func(u domain.User) bool { return u.ID == a.ID })
	return s
}

// --- Attendance ---

// UpsertAttendance mengganti baris dengan ID yang sama, atau menambahkannya di depan.
type UpsertAttendance struct{ Record domain.AttendanceRecord }

func (a UpsertAttendance) Reduce(s State) State {
	for _, r := range s.Attendance {
		if r.ID == a.Record.ID {
			s.Attendance = replaceWhere(s.Attendance, a.Record, func(r domain.AttendanceRecord) bool { return r.ID == a.Record.ID })
			return s
		}
	}
	s.Attendance = prepend(s.Attendance, a.Record)
	return s
}

// --- Audit ---

type AppendAuditLog struct{ Entry domain.AuditLog }

func (a AppendAuditLog) Reduce(s State) State {
	s.AuditLogs = prepend(s.AuditLogs, a.Entry)
	return s
}

// --- Seed ---

// Seed mengganti seluruh koleksi hasil sintesis riwayat.
type Seed struct {
	Attendance []domain.AttendanceRecord
	Payrolls   []domain.Payroll
}

func (a Seed) Reduce(s State) State {
	s.Attendance = append([]domain.AttendanceRecord(nil), a.Attendance...)
	s.Payrolls = append([]domain.Payroll(nil), a.Payrolls...)
	return s
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func replaceWhere[T any](items []T, item T, match func(T) bool) []T {
	out := make([]T, len(items))
	for i, it := range items {
		if match(it) {
			out[i] = item
			continue
		}
		out[i] = it
	}
	return out
}

func removeWhere[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out
}
