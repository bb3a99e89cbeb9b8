package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// defaultPolicy mengikuti menu yang tampil per role. Admin mewarisi semua
// kemampuan Manager.
var defaultPolicy = [][]string{
	{"Employee", "dashboard", "read_own"},
	{"Employee", "attendance", "read_own"},
	{"Employee", "attendance", "write"},
	{"Employee", "payroll", "read_own"},
	{"Employee", "company", "read"},

	{"Manager", "dashboard", "read_all"},
	{"Manager", "attendance", "read_all"},
	{"Manager", "attendance", "write"},
	{"Manager", "employee", "read"},
	{"Manager", "employee", "update"},
	{"Manager", "payroll", "read_all"},
	{"Manager", "payroll", "manage"},
	{"Manager", "company", "read"},

	{"Admin", "employee", "create"},
	{"Admin", "employee", "delete"},
	{"Admin", "user", "manage"},
	{"Admin", "system", "read"},
}

var defaultGrouping = [][]string{
	{"Admin", "Manager"},
}

// NewEnforcer membangun enforcer casbin dari model & policy bawaan.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddPolicies(defaultPolicy); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(defaultGrouping); err != nil {
		return nil, err
	}
	return e, nil
}
