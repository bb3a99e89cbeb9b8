package attendance

import "payroll-pro/internal/domain"

// EmployeeID boleh kosong jika request membawa session karyawan.
// Date dan Time default ke jam server (zona APP_TIMEZONE).
type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	ProofImage string `json:"proof_image"`
	Date       string `json:"date"`
	Time       string `json:"time" binding:"omitempty,clock"`
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id"`
	ProofImage string `json:"proof_image"`
	Date       string `json:"date"`
	Time       string `json:"time" binding:"omitempty,clock"`
	Confirm    bool   `json:"confirm"`
}

type GetAttendancesFilterRequest struct {
	Date       string `form:"date"`
	EmployeeID string `form:"employee_id"`
}

type AttendanceResponse struct {
	domain.AttendanceRecord
	EmployeeName string `json:"employee_name,omitempty"`
	State        State  `json:"state"`
}

type TodayResponse struct {
	EmployeeID string              `json:"employee_id"`
	Date       string              `json:"date"`
	State      State               `json:"state"`
	Record     *AttendanceResponse `json:"record,omitempty"`
}
