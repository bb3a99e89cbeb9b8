package domain

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceOnLeave AttendanceStatus = "On Leave"
)

// AttendanceRecord: satu baris per (karyawan, tanggal). CheckIn/CheckOut berupa teks HH:MM,
// string kosong berarti belum ada.
type AttendanceRecord struct {
	ID                 string           `json:"id"`
	EmployeeID         string           `json:"employee_id"`
	Date               string           `json:"date"`
	Status             AttendanceStatus `json:"status"`
	CheckIn            string           `json:"check_in,omitempty"`
	CheckOut           string           `json:"check_out,omitempty"`
	OvertimeHours      int              `json:"overtime_hours,omitempty"`
	ProofImage         string           `json:"proof_image,omitempty"`
	CheckOutProofImage string           `json:"check_out_proof_image,omitempty"`
}
