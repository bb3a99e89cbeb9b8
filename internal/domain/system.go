package domain

type AuditLog struct {
	ID        string `json:"id" yaml:"id"`
	Action    string `json:"action" yaml:"action"`
	User      string `json:"user" yaml:"user"`
	Role      Role   `json:"role" yaml:"role"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Details   string `json:"details" yaml:"details"`
	Status    string `json:"status" yaml:"status"`
}

type SystemInfo struct {
	Version      string `json:"version" yaml:"version"`
	LastUpdated  string `json:"last_updated" yaml:"last_updated"`
	ServerStatus string `json:"server_status" yaml:"server_status"`
	Uptime       string `json:"uptime" yaml:"uptime"`
}
