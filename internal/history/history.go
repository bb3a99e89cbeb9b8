// Package history membangkitkan riwayat absensi dan penggajian beberapa bulan
// untuk data demo.
package history

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/payroll"
)

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"

	defaultCheckIn  = "08:55"
	defaultCheckOut = "17:05"
	todayCheckIn    = "08:50"
)

// Rand dipenuhi oleh *rand.Rand dari math/rand/v2.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand: seed 0 berarti diambil dari waktu sekarang.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

type Rules struct {
	TransportAllowance int64
	AbsentPenalty      int64
	LeavePenalty       int64
	MaxLeaveDays       int
	OvertimeHourlyRate int64
	BPJSRate           float64
	ProofImages        []string
}

func DefaultRules() Rules {
	return Rules{
		TransportAllowance: 150000,
		AbsentPenalty:      50000,
		LeavePenalty:       25000,
		MaxLeaveDays:       3,
		OvertimeHourlyRate: 20000,
		BPJSRate:           0.03,
	}
}

type Result struct {
	Attendance []domain.AttendanceRecord
	Payrolls   []domain.Payroll
}

type Synthesizer struct {
	rng   Rand
	rules Rules
}

func New(rng Rand, rules Rules) *Synthesizer {
	return &Synthesizer{rng: rng, rules: rules}
}

// Generate menghasilkan absensi setiap hari kerja dan satu slip gaji (Paid) per
// karyawan per bulan, lalu memastikan setiap karyawan punya baris absensi hari ini.
// today berformat YYYY-MM-DD.
func (s *Synthesizer) Generate(employees []domain.Employee, months []string, today string) (Result, error) {
	var res Result

	for _, emp := range employees {
		for _, label := range months {
			first, err := time.Parse(monthLayout, label)
			if err != nil {
				return Result{}, fmt.Errorf("history month %q: %w", label, err)
			}

			records, tally := s.monthAttendance(emp, label, first)
			res.Attendance = append(res.Attendance, records...)
			res.Payrolls = append(res.Payrolls, s.monthPayroll(emp, label, tally))
		}
	}

	hasToday := make(map[string]bool, len(employees))
	for _, a := range res.Attendance {
		if a.Date == today {
			hasToday[a.EmployeeID] = true
		}
	}
	for _, emp := range employees {
		if hasToday[emp.ID] {
			continue
		}
		res.Attendance = append(res.Attendance, domain.AttendanceRecord{
			ID:         "att-today-" + emp.ID,
			EmployeeID: emp.ID,
			Date:       today,
			Status:     domain.AttendancePresent,
			CheckIn:    todayCheckIn,
		})
	}

	return res, nil
}

type monthTally struct {
	absent   int
	leave    int
	overtime int
}

func (s *Synthesizer) monthAttendance(emp domain.Employee, label string, first time.Time) ([]domain.AttendanceRecord, monthTally) {
	var (
		tally   monthTally
		records []domain.AttendanceRecord
	)

	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		rec := domain.AttendanceRecord{
			ID:         fmt.Sprintf("att-%s-%s-%d", emp.ID, label, d.Day()),
			EmployeeID: emp.ID,
			Date:       d.Format(dateLayout),
			Status:     domain.AttendancePresent,
		}

		r := s.rng.Float64()
		switch {
		case r > 0.95:
			rec.Status = domain.AttendanceAbsent
			tally.absent++
		case r > 0.90:
			if tally.leave < s.rules.MaxLeaveDays {
				rec.Status = domain.AttendanceOnLeave
				tally.leave++
			} else {
				// kuota cuti habis, dianggap hadir
				rec.CheckIn, rec.CheckOut = defaultCheckIn, defaultCheckOut
			}
		default:
			rec.CheckIn, rec.CheckOut = defaultCheckIn, defaultCheckOut
			if s.rng.Float64() > 0.8 {
				hours := s.rng.IntN(3) + 1
				rec.OvertimeHours = hours
				rec.CheckOut = fmt.Sprintf("%d:05", 17+hours)
				tally.overtime += hours
			}
			if s.rng.Float64() > 0.5 && len(s.rules.ProofImages) > 0 {
				rec.ProofImage = s.rules.ProofImages[s.rng.IntN(len(s.rules.ProofImages))]
			}
		}

		records = append(records, rec)
	}

	return records, tally
}

func (s *Synthesizer) monthPayroll(emp domain.Employee, label string, tally monthTally) domain.Payroll {
	allowances := []domain.PayrollItem{
		{ID: "all-tr-" + label, Name: "Tunjangan Transportasi", Amount: s.rules.TransportAllowance},
	}
	for _, fa := range emp.FixedAllowances {
		allowances = append(allowances, domain.PayrollItem{
			ID:     fmt.Sprintf("fa-%s-%s", fa.ID, label),
			Name:   fa.Name,
			Amount: fa.Amount,
		})
	}

	deductions := []domain.PayrollItem{
		{ID: "d-bpjs-" + label, Name: "BPJS Kesehatan & TK", Amount: int64(math.Floor(float64(emp.BaseSalary)*s.rules.BPJSRate + 0.5))},
	}
	if tally.absent > 0 {
		deductions = append(deductions, domain.PayrollItem{
			ID:     "d-abs-" + label,
			Name:   fmt.Sprintf("Potongan Absen (%d hari)", tally.absent),
			Amount: int64(tally.absent) * s.rules.AbsentPenalty,
		})
	}
	if tally.leave > 0 {
		deductions = append(deductions, domain.PayrollItem{
			ID:     "d-leave-" + label,
			Name:   fmt.Sprintf("Potongan Cuti (%d hari)", tally.leave),
			Amount: int64(tally.leave) * s.rules.LeavePenalty,
		})
	}

	b := payroll.Calculate(payroll.CalculationInput{
		BaseSalary:    emp.BaseSalary,
		Allowances:    allowances,
		Deductions:    deductions,
		OvertimeHours: float64(tally.overtime),
		OvertimeRate:  s.rules.OvertimeHourlyRate,
	})

	return domain.Payroll{
		ID:             fmt.Sprintf("pr-%s-%s", emp.ID, label),
		EmployeeID:     emp.ID,
		Month:          label,
		BaseSalary:     emp.BaseSalary,
		Allowances:     allowances,
		Deductions:     deductions,
		TotalAllowance: b.TotalAllowance,
		TotalDeduction: b.TotalDeduction,
		OvertimePay:    b.OvertimePay,
		NetSalary:      b.NetSalary,
		Status:         domain.PayrollPaid,
		IssueDate:      label + "-25",
	}
}
