package mockdata_test

import (
	"testing"

	"payroll-pro/internal/mockdata"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	ds, err := mockdata.Load()

	assert.NoError(t, err)
	assert.Len(t, ds.Users, 10)
	assert.Len(t, ds.Employees, 8)
	assert.Len(t, ds.ProofImages, 3)
	assert.Equal(t, "v4.3.1 (Auto-Calc Logic)", ds.SystemInfo.Version)

	st := ds.State()
	emp, ok := st.FindEmployee("e_be1")
	assert.True(t, ok)
	assert.Equal(t, int64(4500000), emp.BaseSalary)
	assert.Len(t, emp.FixedAllowances, 1)
	assert.Equal(t, "Tunjangan Internet", emp.FixedAllowances[0].Name)
	assert.Equal(t, int64(300000), emp.FixedAllowances[0].Amount)

	u, ok := st.FindUser(emp.UserID)
	assert.True(t, ok)
	assert.Equal(t, "Ahmad Backend", u.FullName)
	assert.Empty(t, st.Attendance)
	assert.Empty(t, st.Payrolls)
}

func TestParse_UnknownUser(t *testing.T) {
	raw := []byte(`
users: []
departments: [{id: d1, name: IT}]
positions: [{id: p1, title: Dev, department_id: d1}]
employees:
  - {id: e1, user_id: ghost, department_id: d1, position_id: p1, base_salary: 1}
`)

	_, err := mockdata.Parse(raw)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown user")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := mockdata.Parse([]byte("users: [\n"))

	assert.Error(t, err)
}
