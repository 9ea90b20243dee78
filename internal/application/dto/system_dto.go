package dto

import "time"

// KeepAliveResponse respuesta de POST /api/keep-alive.
type KeepAliveResponse struct {
	Status    string    `json:"status"` // ok|degraded
	Database  string    `json:"database"`
	Cache     string    `json:"cache"`
	Timestamp time.Time `json:"timestamp"`
}

// MigrationResponse respuesta de POST /api/admin/migrations/run.
type MigrationResponse struct {
	Applied []string `json:"applied"`
	Message string   `json:"message"`
}
