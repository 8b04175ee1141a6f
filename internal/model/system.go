package model

import "time"

// VersionInfo describes the running build and the database schema it serves.
type VersionInfo struct {
	AppVersion       string          `json:"app_version"`
	GoVersion        string          `json:"go_version"`
	DbVersion        string          `json:"db_version"`
	StartedAt        time.Time       `json:"started_at"`
	Features         map[string]bool `json:"features"`
	MigrationNeeded  bool            `json:"migration_needed"`
	MigrationMessage *string         `json:"migration_message,omitempty"`
}

// HealthStatus is the liveness report of the API. Uptime is rounded to seconds.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
	Error    string `json:"error,omitempty"`
}
