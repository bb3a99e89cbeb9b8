package department_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"payroll-pro/internal/department"
	departmenterrors "payroll-pro/internal/department/errors"
	departmentMock "payroll-pro/internal/department/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(svc department.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	department.RegisterRoutes(r.Group("/api/v1"), department.NewHandler(svc))
	return r
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := departmentMock.NewMockService(ctrl)
	svc.EXPECT().
		GetAll(gomock.Any()).
		Return([]department.DepartmentResponse{{ID: "d1", Name: "Engineering", EmployeeCount: 2}}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employee_count":2`)
}

func TestDepartmentHandler_GetById_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := departmentMock.NewMockService(ctrl)
	svc.EXPECT().
		GetByID(gomock.Any(), "d9").
		Return(department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments/d9", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
