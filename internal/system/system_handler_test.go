package system_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/system"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSystemService struct {
	InfoFn      func(ctx context.Context) (system.InfoResponse, error)
	AuditLogsFn func(ctx context.Context, filter system.GetAuditLogsFilterRequest) ([]domain.AuditLog, error)
}

func (f *fakeSystemService) Info(ctx context.Context) (system.InfoResponse, error) {
	return f.InfoFn(ctx)
}
func (f *fakeSystemService) AuditLogs(ctx context.Context, filter system.GetAuditLogsFilterRequest) ([]domain.AuditLog, error) {
	return f.AuditLogsFn(ctx, filter)
}

func setupRouter(svc system.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	system.RegisterRoutes(r.Group("/api/v1"), system.NewHandler(svc))
	return r
}

func TestHandler_Info(t *testing.T) {
	r := setupRouter(&fakeSystemService{
		InfoFn: func(ctx context.Context) (system.InfoResponse, error) {
			return system.InfoResponse{SystemInfo: domain.SystemInfo{Version: "v2.4.0"}}, nil
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"v2.4.0"`)
}

func TestHandler_AuditLogs_Paginated(t *testing.T) {
	r := setupRouter(&fakeSystemService{
		AuditLogsFn: func(ctx context.Context, filter system.GetAuditLogsFilterRequest) ([]domain.AuditLog, error) {
			assert.Equal(t, "Success", filter.Status)
			return []domain.AuditLog{{ID: "log1"}, {ID: "log2"}, {ID: "log3"}}, nil
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/audit-logs?status=Success&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":3`)
	assert.NotContains(t, w.Body.String(), "log3")
}
