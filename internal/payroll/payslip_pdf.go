package payroll

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/shared/currency"
	"payroll-pro/internal/store"
)

const payslipLabelWidth = 40

// payslipLines menyusun isi slip gaji: identitas, pendapatan, potongan, lalu
// gaji bersih.
func payslipLines(p domain.Payroll, emp *store.EmployeeView, printedAt time.Time) []string {
	lines := []string{
		"PayrollPro - SLIP GAJI",
		"Jl. Jendral Sudirman No. 123, Jakarta",
		"",
		"Periode       : " + p.Month,
		"Ref #         : " + strings.ToUpper(p.ID),
		"Status        : " + string(p.Status),
	}
	if emp != nil {
		lines = append(lines,
			"Karyawan      : "+emp.User.FullName+" <"+emp.User.Email+">",
			"Nomor Induk   : "+emp.EmployeeIDNumber,
			"Departemen    : "+orUnknown(emp.DepartmentName),
			"Jabatan       : "+orUnknown(emp.PositionTitle),
		)
	}
	issue := p.IssueDate
	if issue == "" {
		issue = "Pending"
	}
	lines = append(lines, "Tanggal Bayar : "+issue, "", "PENDAPATAN")

	lines = append(lines, amountLine("Gaji Pokok", p.BaseSalary))
	for _, a := range p.Allowances {
		lines = append(lines, amountLine(a.Name, a.Amount))
	}
	if p.OvertimePay > 0 {
		lines = append(lines, amountLine("Lembur", p.OvertimePay))
	}
	lines = append(lines, amountLine("Total Pendapatan", p.BaseSalary+p.TotalAllowance+p.OvertimePay), "", "POTONGAN")

	if len(p.Deductions) == 0 {
		lines = append(lines, "Tidak ada potongan.")
	}
	for _, d := range p.Deductions {
		lines = append(lines, amountLine(d.Name, -d.Amount))
	}
	lines = append(lines,
		amountLine("Total Potongan", -p.TotalDeduction),
		"",
		amountLine("JUMLAH BERSIH DITERIMA", p.NetSalary),
		"",
		"PayrollPro Inc. - Dibuat pada "+printedAt.Format("02/01/2006"),
		"Dokumen Dibuat Sistem - Tidak Perlu Tanda Tangan Basah",
	)
	return lines
}

func amountLine(label string, amount int64) string {
	return fmt.Sprintf("%-*s %s", payslipLabelWidth, label, currency.FormatIDR(amount))
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

func buildSimplePayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Slip Gaji"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 10 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

var pdfReplacer = strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")

// pdfEscape juga membuang karakter non-ASCII karena font Helvetica bawaan
// memakai encoding standar.
func pdfEscape(v string) string {
	v = strings.Map(func(r rune) rune {
		if r == '\u00a0' {
			return ' '
		}
		if r > 126 {
			return '?'
		}
		return r
	}, v)
	return pdfReplacer.Replace(v)
}
