package payroll

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/notification"
	payrollerrors "payroll-pro/internal/payroll/errors"
	"payroll-pro/internal/shared/contextutil"
	"payroll-pro/internal/shared/currency"
	"payroll-pro/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const filterAll = "All"

// CapabilityChecker dipenuhi oleh rbac.Service.
type CapabilityChecker interface {
	Can(role domain.Role, resource, action string) bool
}

type Service interface {
	Preview(ctx context.Context, req PreviewPayrollRequest) (PreviewResponse, error)
	AutoDeductions(ctx context.Context, req AutoDeductionsRequest) []domain.PayrollItem
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error
	Payslip(ctx context.Context, id string) ([]byte, string, error)
	Export(ctx context.Context, filter GetPayrollsFilterRequest) ([]byte, error)
}

type service struct {
	repo     Repository
	caps     CapabilityChecker
	notifier notification.Sink
	now      func() time.Time
}

func NewService(repo Repository, caps CapabilityChecker, notifier notification.Sink, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, caps: caps, notifier: notifier, now: now}
}

func (s *service) Preview(ctx context.Context, req PreviewPayrollRequest) (PreviewResponse, error) {
	emp, err := s.repo.FindEmployee(ctx, req.EmployeeID)
	if err != nil {
		return PreviewResponse{}, err
	}

	allowances := toItems(req.Allowances)
	if len(req.Allowances) == 0 {
		allowances = fixedAllowanceItems(emp.FixedAllowances)
	}
	deductions := toItems(req.Deductions)

	rate := DefaultOvertimeRate(emp.BaseSalary)
	if req.OvertimeRate != nil {
		rate = *req.OvertimeRate
	}

	b := Calculate(CalculationInput{
		BaseSalary:    emp.BaseSalary,
		Allowances:    allowances,
		Deductions:    deductions,
		OvertimeHours: req.OvertimeHours,
		OvertimeRate:  rate,
	})

	return PreviewResponse{
		BaseSalary:   emp.BaseSalary,
		OvertimeRate: rate,
		Allowances:   allowances,
		Deductions:   deductions,
		Breakdown:    b,
	}, nil
}

func (s *service) AutoDeductions(ctx context.Context, req AutoDeductionsRequest) []domain.PayrollItem {
	return AutoDeductions(req.BaseSalary, toItems(req.Deductions))
}

func (s *service) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, nil)

	emp, err := s.repo.FindEmployee(ctx, req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, err
	}

	status := domain.PayrollSubmitted
	if req.Status != "" {
		status = domain.PayrollStatus(req.Status)
		if !status.Valid() {
			return PayrollResponse{}, payrollerrors.ErrInvalidStatus
		}
	}

	issueDate := req.IssueDate
	if issueDate == "" {
		issueDate = s.now().Format("2006-01-02")
	} else if err := validateDate(issueDate); err != nil {
		return PayrollResponse{}, err
	}
	if err := validateMonth(req.Month); err != nil {
		return PayrollResponse{}, err
	}

	exists, err := s.repo.ExistsForMonth(ctx, emp.ID, req.Month)
	if err != nil {
		return PayrollResponse{}, err
	}
	if exists {
		log.Warn("payroll for employee and month already exists, creating another one",
			zap.String("employee_id", emp.ID),
			zap.String("month", req.Month),
		)
	}

	rate := DefaultOvertimeRate(emp.BaseSalary)
	if req.OvertimeRate != nil {
		rate = *req.OvertimeRate
	}

	p := domain.Payroll{
		ID:         "pr-" + uuid.NewString(),
		EmployeeID: emp.ID,
		Month:      req.Month,
		BaseSalary: emp.BaseSalary,
		Allowances: toItems(req.Allowances),
		Deductions: toItems(req.Deductions),
		Status:     status,
		IssueDate:  issueDate,
	}
	applyBreakdown(&p, Calculate(CalculationInput{
		BaseSalary:    p.BaseSalary,
		Allowances:    p.Allowances,
		Deductions:    p.Deductions,
		OvertimeHours: req.OvertimeHours,
		OvertimeRate:  rate,
	}))

	if err := s.repo.Create(ctx, &p); err != nil {
		return PayrollResponse{}, err
	}

	log.Info("payroll created",
		zap.String("payroll_id", p.ID),
		zap.String("employee_id", p.EmployeeID),
		zap.Int64("net_salary", p.NetSalary),
	)
	notification.Emit(ctx, s.notifier, "Data penggajian baru berhasil ditambahkan.", notification.SeveritySuccess)

	return mapToResponse(p, emp), nil
}

func (s *service) GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, error) {
	status := strings.TrimSpace(filter.Status)
	if status != "" && status != filterAll && !domain.PayrollStatus(status).Valid() {
		return nil, payrollerrors.ErrInvalidStatusFilter
	}

	payrolls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.repo.FindEmployees(ctx)
	if err != nil {
		return nil, err
	}

	ownEmployeeID, scoped, err := s.ownScope(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.TrimSpace(filter.Search)
	searchLower := strings.ToLower(search)

	out := make([]PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		if scoped && p.EmployeeID != ownEmployeeID {
			continue
		}
		if status != "" && status != filterAll && string(p.Status) != status {
			continue
		}

		emp, hasEmp := employees[p.EmployeeID]
		if search != "" {
			nameMatch := hasEmp && strings.Contains(strings.ToLower(emp.User.FullName), searchLower)
			if !nameMatch && !strings.Contains(p.Month, search) {
				continue
			}
		}

		var empPtr *store.EmployeeView
		if hasEmp {
			e := emp
			empPtr = &e
		}
		out = append(out, mapToResponse(p, empPtr))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p, s.lookupEmployee(ctx, p.EmployeeID)), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	if err := validateUpdate(req); err != nil {
		return PayrollResponse{}, err
	}

	var allowances, deductions []domain.PayrollItem
	if req.Allowances != nil {
		allowances = toItems(*req.Allowances)
	}
	if req.Deductions != nil {
		deductions = toItems(*req.Deductions)
	}

	p, err := s.repo.Update(ctx, id, func(p *domain.Payroll) error {
		if req.Month != nil {
			p.Month = *req.Month
		}
		if req.BaseSalary != nil {
			p.BaseSalary = *req.BaseSalary
		}
		if req.Allowances != nil {
			p.Allowances = allowances
		}
		if req.Deductions != nil {
			p.Deductions = deductions
		}
		if req.Status != nil {
			p.Status = domain.PayrollStatus(*req.Status)
		}
		if req.IssueDate != nil {
			p.IssueDate = *req.IssueDate
		}

		in := CalculationInput{
			BaseSalary: p.BaseSalary,
			Allowances: p.Allowances,
			Deductions: p.Deductions,
		}
		if req.OvertimeHours != nil {
			in.OvertimeHours = *req.OvertimeHours
			in.OvertimeRate = DefaultOvertimeRate(p.BaseSalary)
			if req.OvertimeRate != nil {
				in.OvertimeRate = *req.OvertimeRate
			}
		}
		b := Calculate(in)
		if req.OvertimeHours == nil {
			// jam lembur tidak disimpan, jadi pakai nominal lembur yang lama
			b.OvertimePay = p.OvertimePay
			b.NetSalary += p.OvertimePay
		}
		applyBreakdown(p, b)
		return nil
	})
	if err != nil {
		return PayrollResponse{}, err
	}

	contextutil.GetLogger(ctx, nil).Info("payroll updated",
		zap.String("payroll_id", p.ID),
		zap.String("status", string(p.Status)),
		zap.Int64("net_salary", p.NetSalary),
	)
	notification.Emit(ctx, s.notifier, "Data penggajian berhasil diperbarui.", notification.SeveritySuccess)

	return mapToResponse(*p, s.lookupEmployee(ctx, p.EmployeeID)), nil
}

// validateUpdate memeriksa field yang dikirim sebelum store dikunci.
func validateUpdate(req UpdatePayrollRequest) error {
	if req.Month != nil {
		if err := validateMonth(*req.Month); err != nil {
			return err
		}
	}
	if req.BaseSalary != nil && *req.BaseSalary < 0 {
		return payrollerrors.ErrInvalidMoneyValue
	}
	if req.Status != nil && !domain.PayrollStatus(*req.Status).Valid() {
		return payrollerrors.ErrInvalidStatus
	}
	if req.IssueDate != nil && *req.IssueDate != "" {
		if err := validateDate(*req.IssueDate); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	contextutil.GetLogger(ctx, nil).Info("payroll deleted", zap.String("payroll_id", id))
	notification.Emit(ctx, s.notifier, "Data penggajian telah dihapus.", notification.SeverityInfo)
	return nil
}

func (s *service) Payslip(ctx context.Context, id string) ([]byte, string, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	emp := s.lookupEmployee(ctx, p.EmployeeID)

	pdf, err := buildSimplePayslipPDF(payslipLines(*p, emp, s.now()))
	if err != nil {
		return nil, "", payrollerrors.ErrPayslipFailed.WithDetails(err.Error())
	}
	return pdf, "payslip_" + p.ID + ".pdf", nil
}

func (s *service) Export(ctx context.Context, filter GetPayrollsFilterRequest) ([]byte, error) {
	rows, err := s.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out, err := buildPayrollWorkbook(rows)
	if err != nil {
		contextutil.GetLogger(ctx, nil).Error("build payroll export failed", zap.Error(err))
		return nil, payrollerrors.ErrExportFailed
	}
	return out, nil
}

// ownScope mengembalikan id karyawan milik viewer jika role-nya tidak boleh
// melihat semua penggajian. Tanpa session, daftar tidak dibatasi.
func (s *service) ownScope(ctx context.Context) (string, bool, error) {
	viewer, ok := contextutil.GetViewer(ctx)
	if !ok || s.caps == nil || s.caps.Can(viewer.Role, "payroll", "read_all") {
		return "", false, nil
	}
	empID, _, err := s.repo.EmployeeIDByUserID(ctx, viewer.UserID)
	if err != nil {
		return "", false, err
	}
	return empID, true, nil
}

func (s *service) lookupEmployee(ctx context.Context, id string) *store.EmployeeView {
	emp, err := s.repo.FindEmployee(ctx, id)
	if err != nil {
		if !errors.Is(err, payrollerrors.ErrEmployeeNotFound) {
			contextutil.GetLogger(ctx, nil).Warn("lookup payroll employee failed", zap.Error(err))
		}
		return nil
	}
	return emp
}

func applyBreakdown(p *domain.Payroll, b Breakdown) {
	p.TotalAllowance = b.TotalAllowance
	p.TotalDeduction = b.TotalDeduction
	p.OvertimePay = b.OvertimePay
	p.NetSalary = b.NetSalary
}

func toItems(in []PayrollItemInput) []domain.PayrollItem {
	out := make([]domain.PayrollItem, 0, len(in))
	for _, it := range in {
		id := it.ID
		if id == "" {
			id = "item-" + uuid.NewString()
		}
		out = append(out, domain.PayrollItem{ID: id, Name: strings.TrimSpace(it.Name), Amount: it.Amount})
	}
	return out
}

func fixedAllowanceItems(fixed []domain.AllowanceConfig) []domain.PayrollItem {
	out := make([]domain.PayrollItem, 0, len(fixed))
	for _, fa := range fixed {
		if !fa.IsFixed {
			continue
		}
		out = append(out, domain.PayrollItem{ID: "fixed_" + fa.ID, Name: fa.Name, Amount: fa.Amount})
	}
	return out
}

func validateMonth(v string) error {
	if _, err := time.Parse("2006-01", v); err != nil {
		return payrollerrors.ErrInvalidMonth
	}
	return nil
}

func validateDate(v string) error {
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return payrollerrors.ErrInvalidDateFormat
	}
	return nil
}

func mapToResponse(p domain.Payroll, emp *store.EmployeeView) PayrollResponse {
	resp := PayrollResponse{
		Payroll:        p,
		NetSalaryLabel: currency.FormatIDR(p.NetSalary),
	}
	if emp != nil {
		resp.Employee = &PayrollEmployeeResponse{
			ID:               emp.ID,
			FullName:         emp.User.FullName,
			Email:            emp.User.Email,
			EmployeeIDNumber: emp.EmployeeIDNumber,
			DepartmentName:   emp.DepartmentName,
			PositionTitle:    emp.PositionTitle,
			AvatarURL:        emp.User.AvatarURL,
		}
	}
	return resp
}
