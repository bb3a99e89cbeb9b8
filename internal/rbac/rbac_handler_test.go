package rbac_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct{}

func (m *mockService) Enforce(req rbac.EnforceRequest) (bool, error) {
	return req.Resource == "employee" && req.Action == "read", nil
}

func (m *mockService) Can(role domain.Role, resource, action string) bool {
	return resource == "employee" && action == "read"
}

func (m *mockService) Capabilities(role domain.Role) ([]domain.Capability, error) {
	return []domain.Capability{{Resource: "employee", Action: "read"}}, nil
}

type envelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := rbac.NewHandler(&mockService{})
	router := gin.New()
	router.POST("/rbac/enforce", handler.Enforce)

	jsonBody, _ := json.Marshal(rbac.EnforceRequest{Role: domain.RoleManager, Resource: "employee", Action: "read"})
	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var resp rbac.EnforceResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, resp.Allowed)
}

func TestHandler_Enforce_InvalidRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := rbac.NewHandler(&mockService{})
	router := gin.New()
	router.POST("/rbac/enforce", handler.Enforce)

	body := `{"role":"Guest","resource":"employee","action":"read"}`
	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Capabilities(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := rbac.NewHandler(&mockService{})
	router := gin.New()
	router.GET("/rbac/capabilities", handler.Capabilities)

	req, _ := http.NewRequest(http.MethodGet, "/rbac/capabilities?role=Manager", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var resp rbac.CapabilitiesResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, domain.RoleManager, resp.Role)
	assert.Len(t, resp.Capabilities, 1)
}
