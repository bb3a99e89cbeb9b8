package domain

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

type User struct {
	ID        string `json:"id" yaml:"id"`
	FullName  string `json:"full_name" yaml:"full_name"`
	Email     string `json:"email" yaml:"email"`
	Role      Role   `json:"role" yaml:"role"`
	AvatarURL string `json:"avatar_url,omitempty" yaml:"avatar_url"`
}
