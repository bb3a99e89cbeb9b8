package history_test

import (
	"strings"
	"testing"
	"time"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand mengembalikan nilai berurutan; setelah habis selalu 0.1 / 0.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.1
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

var sampleEmployee = domain.Employee{
	ID:         "e1",
	UserID:     "u1",
	BaseSalary: 4000000,
	FixedAllowances: []domain.AllowanceConfig{
		{ID: "fa9", Name: "Tunjangan Device", Amount: 200000, IsFixed: true},
	},
}

func TestGenerate_ScriptedMonth(t *testing.T) {
	rng := &scriptedRand{
		// 3 Feb absen, 4-6 Feb cuti, 7 Feb kuota cuti habis, 10 Feb lembur + bukti
		floats: []float64{0.99, 0.93, 0.93, 0.93, 0.93, 0.5, 0.85, 0.6},
		ints:   []int{1, 0},
	}
	rules := history.DefaultRules()
	rules.ProofImages = []string{"https://img/office-1.jpg", "https://img/office-2.jpg"}

	res, err := history.New(rng, rules).Generate([]domain.Employee{sampleEmployee}, []string{"2025-02"}, "2025-02-10")
	require.NoError(t, err)

	// Februari 2025 punya 20 hari kerja dan baris hari ini sudah ada.
	require.Len(t, res.Attendance, 20)

	byDate := make(map[string]domain.AttendanceRecord)
	for _, a := range res.Attendance {
		byDate[a.Date] = a
	}

	absent := byDate["2025-02-03"]
	assert.Equal(t, "att-e1-2025-02-3", absent.ID)
	assert.Equal(t, domain.AttendanceAbsent, absent.Status)
	assert.Empty(t, absent.CheckIn)

	assert.Equal(t, domain.AttendanceOnLeave, byDate["2025-02-06"].Status)

	forced := byDate["2025-02-07"]
	assert.Equal(t, domain.AttendancePresent, forced.Status)
	assert.Equal(t, "08:55", forced.CheckIn)
	assert.Equal(t, "17:05", forced.CheckOut)

	overtime := byDate["2025-02-10"]
	assert.Equal(t, 2, overtime.OvertimeHours)
	assert.Equal(t, "19:05", overtime.CheckOut)
	assert.Equal(t, "https://img/office-1.jpg", overtime.ProofImage)

	require.Len(t, res.Payrolls, 1)
	p := res.Payrolls[0]
	assert.Equal(t, "pr-e1-2025-02", p.ID)
	assert.Equal(t, domain.PayrollPaid, p.Status)
	assert.Equal(t, "2025-02-25", p.IssueDate)
	assert.Equal(t, int64(350000), p.TotalAllowance)
	assert.Equal(t, int64(245000), p.TotalDeduction)
	assert.Equal(t, int64(40000), p.OvertimePay)
	assert.Equal(t, int64(4145000), p.NetSalary)

	names := make([]string, 0, len(p.Deductions))
	for _, d := range p.Deductions {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"BPJS Kesehatan & TK", "Potongan Absen (1 hari)", "Potongan Cuti (3 hari)"}, names)
	assert.Equal(t, "fa-fa9-2025-02", p.Allowances[1].ID)
}

func TestGenerate_AddsTodayRow(t *testing.T) {
	res, err := history.New(&scriptedRand{}, history.DefaultRules()).
		Generate([]domain.Employee{sampleEmployee}, []string{"2025-02"}, "2025-03-01")
	require.NoError(t, err)

	last := res.Attendance[len(res.Attendance)-1]
	assert.Equal(t, "att-today-e1", last.ID)
	assert.Equal(t, "2025-03-01", last.Date)
	assert.Equal(t, "08:50", last.CheckIn)
	assert.Empty(t, last.CheckOut)

	// tanpa absen/cuti hanya ada potongan BPJS
	require.Len(t, res.Payrolls[0].Deductions, 1)
	assert.Equal(t, int64(120000), res.Payrolls[0].Deductions[0].Amount)
}

func TestGenerate_Invariants(t *testing.T) {
	employees := []domain.Employee{
		sampleEmployee,
		{ID: "e2", UserID: "u2", BaseSalary: 2400000},
	}
	months := []string{"2025-08", "2025-09", "2025-10"}

	for seed := int64(1); seed <= 20; seed++ {
		res, err := history.New(history.NewRand(seed), history.DefaultRules()).Generate(employees, months, "2025-10-31")
		require.NoError(t, err)

		perDay := make(map[string]int)
		leave := make(map[string]int)
		for _, a := range res.Attendance {
			d, err := time.Parse("2006-01-02", a.Date)
			require.NoError(t, err)
			assert.NotEqual(t, time.Saturday, d.Weekday())
			assert.NotEqual(t, time.Sunday, d.Weekday())

			perDay[a.EmployeeID+a.Date]++
			if a.Status == domain.AttendanceOnLeave {
				leave[a.EmployeeID+a.Date[:7]]++
			}
		}
		for key, n := range perDay {
			assert.Equal(t, 1, n, key)
		}
		for key, n := range leave {
			assert.LessOrEqual(t, n, 3, key)
		}

		// Agustus 21, September 22, Oktober 23 hari kerja
		assert.Len(t, res.Attendance, 2*(21+22+23))

		for _, p := range res.Payrolls {
			assert.Equal(t, p.BaseSalary+p.TotalAllowance+p.OvertimePay-p.TotalDeduction, p.NetSalary)
			assert.True(t, strings.HasPrefix(p.ID, "pr-"+p.EmployeeID))
		}
	}
}

func TestGenerate_SameSeedSameOutput(t *testing.T) {
	employees := []domain.Employee{sampleEmployee}
	a, err := history.New(history.NewRand(42), history.DefaultRules()).Generate(employees, []string{"2025-09"}, "2025-09-30")
	require.NoError(t, err)
	b, err := history.New(history.NewRand(42), history.DefaultRules()).Generate(employees, []string{"2025-09"}, "2025-09-30")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_InvalidMonth(t *testing.T) {
	_, err := history.New(&scriptedRand{}, history.DefaultRules()).Generate([]domain.Employee{sampleEmployee}, []string{"Agustus"}, "2025-08-01")
	assert.Error(t, err)
}
