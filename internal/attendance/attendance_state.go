package attendance

import "payroll-pro/internal/domain"

// State adalah posisi satu karyawan pada satu tanggal.
type State string

const (
	StateNoRecord   State = "NoRecord"
	StateCheckedIn  State = "CheckedIn"
	StateCheckedOut State = "CheckedOut"
)

// CheckInUnavailable dipakai saat absen pulang dikonfirmasi tanpa absen masuk.
const CheckInUnavailable = "-"

// StateOf: baris absen/cuti tanpa jam masuk dihitung NoRecord.
func StateOf(rec *domain.AttendanceRecord) State {
	switch {
	case rec == nil:
		return StateNoRecord
	case rec.CheckOut != "":
		return StateCheckedOut
	case rec.CheckIn != "":
		return StateCheckedIn
	default:
		return StateNoRecord
	}
}
