package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/payroll"
	payrollerrors "payroll-pro/internal/payroll/errors"
	"payroll-pro/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	previewFn        func(ctx context.Context, req payroll.PreviewPayrollRequest) (payroll.PreviewResponse, error)
	autoDeductionsFn func(ctx context.Context, req payroll.AutoDeductionsRequest) []domain.PayrollItem
	createFn         func(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error)
	getAllFn         func(ctx context.Context, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error)
	getByIDFn        func(ctx context.Context, id string) (payroll.PayrollResponse, error)
	updateFn         func(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error)
	deleteFn         func(ctx context.Context, id string) error
	payslipFn        func(ctx context.Context, id string) ([]byte, string, error)
	exportFn         func(ctx context.Context, filter payroll.GetPayrollsFilterRequest) ([]byte, error)
}

func (f *fakePayrollService) Preview(ctx context.Context, req payroll.PreviewPayrollRequest) (payroll.PreviewResponse, error) {
	return f.previewFn(ctx, req)
}

func (f *fakePayrollService) AutoDeductions(ctx context.Context, req payroll.AutoDeductionsRequest) []domain.PayrollItem {
	return f.autoDeductionsFn(ctx, req)
}

func (f *fakePayrollService) Create(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakePayrollService) GetAll(ctx context.Context, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePayrollService) Update(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakePayrollService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakePayrollService) Payslip(ctx context.Context, id string) ([]byte, string, error) {
	return f.payslipFn(ctx, id)
}

func (f *fakePayrollService) Export(ctx context.Context, filter payroll.GetPayrollsFilterRequest) ([]byte, error) {
	return f.exportFn(ctx, filter)
}

func TestPayrollHandler_Create(t *testing.T) {
	svc := &fakePayrollService{
		createFn: func(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
			assert.Equal(t, "e1", req.EmployeeID)
			assert.Equal(t, "2025-10", req.Month)
			assert.Equal(t, 4.5, req.OvertimeHours)
			return payroll.PayrollResponse{Payroll: domain.Payroll{ID: "pr-1", EmployeeID: req.EmployeeID, Status: domain.PayrollSubmitted}}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"employee_id":"e1","month":"2025-10","overtime_hours":4.5}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrollHandler_Create_ValidationError(t *testing.T) {
	h := payroll.NewHandler(&fakePayrollService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(`{"month":"2025-10"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestPayrollHandler_GetAll_Paginated(t *testing.T) {
	svc := &fakePayrollService{
		getAllFn: func(ctx context.Context, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
			assert.Equal(t, "Paid", filter.Status)
			out := make([]payroll.PayrollResponse, 0, 12)
			for i := 0; i < 12; i++ {
				out = append(out, payroll.PayrollResponse{Payroll: domain.Payroll{ID: "pr", Status: domain.PayrollPaid}})
			}
			return out, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payrolls?status=Paid&page=2", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(12), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)

	var items []payroll.PayrollResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}

func TestPayrollHandler_GetById_NotFound(t *testing.T) {
	svc := &fakePayrollService{
		getByIDFn: func(ctx context.Context, id string) (payroll.PayrollResponse, error) {
			assert.Equal(t, "pr-404", id)
			return payroll.PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/pr-404", nil)
	c.Params = []gin.Param{{Key: "id", Value: "pr-404"}}

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestPayrollHandler_Update(t *testing.T) {
	svc := &fakePayrollService{
		updateFn: func(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
			assert.Equal(t, "pr-1", id)
			require.NotNil(t, req.Status)
			assert.Equal(t, "Approved", *req.Status)
			assert.Nil(t, req.OvertimeHours)
			return payroll.PayrollResponse{Payroll: domain.Payroll{ID: id, Status: domain.PayrollApproved}}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/payrolls/pr-1", strings.NewReader(`{"status":"Approved"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: "pr-1"}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPayrollHandler_Delete(t *testing.T) {
	svc := &fakePayrollService{
		deleteFn: func(ctx context.Context, id string) error {
			assert.Equal(t, "pr-1", id)
			return nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/payrolls/pr-1", nil)
	c.Params = []gin.Param{{Key: "id", Value: "pr-1"}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mustDecodeEnvelope(t, w.Body.Bytes()).Ok)
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	svc := &fakePayrollService{
		payslipFn: func(ctx context.Context, id string) ([]byte, string, error) {
			return []byte("%PDF-1.4"), "payslip_" + id + ".pdf", nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/pr-1/payslip", nil)
	c.Params = []gin.Param{{Key: "id", Value: "pr-1"}}

	h.DownloadPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip_pr-1.pdf")
}

func TestPayrollHandler_AutoDeductions(t *testing.T) {
	svc := &fakePayrollService{
		autoDeductionsFn: func(ctx context.Context, req payroll.AutoDeductionsRequest) []domain.PayrollItem {
			assert.Equal(t, int64(4500000), req.BaseSalary)
			return []domain.PayrollItem{{ID: "bpjs_kes", Name: "BPJS Kesehatan", Amount: 45000}}
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/auto-deductions", strings.NewReader(`{"base_salary":4500000}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.AutoDeductions(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPayrollRoutes_ExportBeforeID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakePayrollService{
		exportFn: func(ctx context.Context, filter payroll.GetPayrollsFilterRequest) ([]byte, error) {
			return []byte("PK"), nil
		},
	}

	r := gin.New()
	payroll.RegisterRoutes(r.Group(""), payroll.NewHandler(svc), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
}
