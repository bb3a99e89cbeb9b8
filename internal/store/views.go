package store

import "payroll-pro/internal/domain"

// EmployeeView adalah karyawan yang sudah di-join dengan user, departemen dan
// jabatan. Selalu dibangun saat dibaca, sehingga perubahan user langsung terlihat.
type EmployeeView struct {
	domain.Employee
	User           domain.User `json:"user"`
	DepartmentName string      `json:"department_name"`
	PositionTitle  string      `json:"position_title"`
}

func (s State) EmployeeView(id string) (EmployeeView, bool) {
	e, ok := s.FindEmployee(id)
	if !ok {
		return EmployeeView{}, false
	}
	return s.join(e), true
}

// EmployeeViews mengembalikan semua karyawan dalam urutan state.
func (s State) EmployeeViews() []EmployeeView {
	out := make([]EmployeeView, 0, len(s.Employees))
	for _, e := range s.Employees {
		out = append(out, s.join(e))
	}
	return out
}

func (s State) join(e domain.Employee) EmployeeView {
	v := EmployeeView{Employee: e}
	if u, ok := s.FindUser(e.UserID); ok {
		v.User = u
	}
	if d, ok := s.FindDepartment(e.DepartmentID); ok {
		v.DepartmentName = d.Name
	}
	if p, ok := s.FindPosition(e.PositionID); ok {
		v.PositionTitle = p.Title
	}
	return v
}
