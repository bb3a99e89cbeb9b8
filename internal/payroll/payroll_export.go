package payroll

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Penggajian"

var exportHeaders = []string{
	"ID", "Karyawan", "Nomor Induk", "Periode", "Gaji Pokok", "Total Tunjangan",
	"Lembur", "Total Potongan", "Gaji Bersih", "Status", "Tanggal Bayar",
}

// buildPayrollWorkbook menulis daftar penggajian ke satu sheet XLSX.
func buildPayrollWorkbook(rows []PayrollResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	// format ribuan tanpa desimal
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	for r, p := range rows {
		name, number := "", ""
		if p.Employee != nil {
			name = p.Employee.FullName
			number = p.Employee.EmployeeIDNumber
		}
		values := []any{
			p.ID, name, number, p.Month, p.BaseSalary, p.TotalAllowance,
			p.OvertimePay, p.TotalDeduction, p.NetSalary, string(p.Status), p.IssueDate,
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if len(rows) > 0 {
		last := len(rows) + 1
		if err := f.SetCellStyle(exportSheet, "E2", fmt.Sprintf("I%d", last), moneyStyle); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(exportSheet, "A", lastCol, 18); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
