// Package mockdata menyediakan dataset awal (user, karyawan, master data) yang
// di-embed ke binary.
package mockdata

import (
	_ "embed"
	"fmt"

	"payroll-pro/internal/domain"
	"payroll-pro/internal/store"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type Dataset struct {
	Users       []domain.User       `yaml:"users"`
	Departments []domain.Department `yaml:"departments"`
	Positions   []domain.Position   `yaml:"positions"`
	Employees   []domain.Employee   `yaml:"employees"`
	AuditLogs   []domain.AuditLog   `yaml:"audit_logs"`
	SystemInfo  domain.SystemInfo   `yaml:"system_info"`
	ProofImages []string            `yaml:"proof_images"`
}

// Load mem-parse dataset bawaan.
func Load() (*Dataset, error) {
	return Parse(seedYAML)
}

func Parse(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse mock dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// validate memastikan setiap karyawan menunjuk user, departemen dan jabatan yang ada.
func (ds *Dataset) validate() error {
	users := make(map[string]struct{}, len(ds.Users))
	for _, u := range ds.Users {
		if !u.Role.Valid() {
			return fmt.Errorf("user %s: invalid role %q", u.ID, u.Role)
		}
		users[u.ID] = struct{}{}
	}
	depts := make(map[string]struct{}, len(ds.Departments))
	for _, d := range ds.Departments {
		depts[d.ID] = struct{}{}
	}
	positions := make(map[string]struct{}, len(ds.Positions))
	for _, p := range ds.Positions {
		positions[p.ID] = struct{}{}
	}

	for _, e := range ds.Employees {
		if _, ok := users[e.UserID]; !ok {
			return fmt.Errorf("employee %s: unknown user %q", e.ID, e.UserID)
		}
		if _, ok := depts[e.DepartmentID]; !ok {
			return fmt.Errorf("employee %s: unknown department %q", e.ID, e.DepartmentID)
		}
		if _, ok := positions[e.PositionID]; !ok {
			return fmt.Errorf("employee %s: unknown position %q", e.ID, e.PositionID)
		}
		if e.BaseSalary < 0 {
			return fmt.Errorf("employee %s: negative base salary", e.ID)
		}
	}
	return nil
}

// State menghasilkan state awal tanpa absensi dan penggajian; keduanya diisi
// oleh sintesis riwayat.
func (ds *Dataset) State() store.State {
	return store.State{
		Users:       ds.Users,
		Departments: ds.Departments,
		Positions:   ds.Positions,
		Employees:   ds.Employees,
		AuditLogs:   ds.AuditLogs,
		SystemInfo:  ds.SystemInfo,
	}
}
