package domain

// Capability adalah pasangan resource:action yang boleh ditampilkan untuk sebuah role.
type Capability struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
