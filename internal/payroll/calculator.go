package payroll

import (
	"math"

	"payroll-pro/internal/domain"
)

// Jam kerja standar per bulan untuk tarif lembur default.
const standardMonthlyHours = 173

type autoDeductionRule struct {
	ID   string
	Name string
	Rate float64
}

var autoDeductionRules = []autoDeductionRule{
	{ID: "bpjs_kes", Name: "BPJS Kesehatan (1%)", Rate: 0.01},
	{ID: "bpjs_ket", Name: "BPJS Ketenagakerjaan (2%)", Rate: 0.02},
	{ID: "pph21", Name: "Pajak PPh 21 (5%)", Rate: 0.05},
}

type CalculationInput struct {
	BaseSalary    int64
	Allowances    []domain.PayrollItem
	Deductions    []domain.PayrollItem
	OvertimeHours float64
	OvertimeRate  int64
}

type Breakdown struct {
	TotalAllowance int64 `json:"total_allowance"`
	TotalDeduction int64 `json:"total_deduction"`
	OvertimePay    int64 `json:"overtime_pay"`
	NetSalary      int64 `json:"net_salary"`
}

// Calculate tidak pernah meng-clamp NetSalary; nilai negatif tetap dikembalikan.
func Calculate(in CalculationInput) Breakdown {
	totalAllowance := sumItems(in.Allowances)
	totalDeduction := sumItems(in.Deductions)
	overtimePay := roundHalfUp(in.OvertimeHours * float64(in.OvertimeRate))

	return Breakdown{
		TotalAllowance: totalAllowance,
		TotalDeduction: totalDeduction,
		OvertimePay:    overtimePay,
		NetSalary:      in.BaseSalary + totalAllowance + overtimePay - totalDeduction,
	}
}

func DefaultOvertimeRate(baseSalary int64) int64 {
	return roundHalfUp(float64(baseSalary) / standardMonthlyHours)
}

// AutoDeductions menambahkan potongan wajib yang belum ada (dicocokkan dari nama).
// Slice masukan tidak diubah.
func AutoDeductions(baseSalary int64, existing []domain.PayrollItem) []domain.PayrollItem {
	out := make([]domain.PayrollItem, 0, len(existing)+len(autoDeductionRules))
	out = append(out, existing...)

	names := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		names[d.Name] = struct{}{}
	}

	for _, rule := range autoDeductionRules {
		if _, ok := names[rule.Name]; ok {
			continue
		}
		out = append(out, domain.PayrollItem{
			ID:     rule.ID,
			Name:   rule.Name,
			Amount: roundHalfUp(float64(baseSalary) * rule.Rate),
		})
	}
	return out
}

func sumItems(items []domain.PayrollItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Amount
	}
	return total
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
