package service

import (
	"context"
	"database/sql"
	"runtime"
	"strconv"
	"time"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/database"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/version"
)

// SystemService reports liveness and build information.
type SystemService struct {
	db        *sql.DB
	features  map[string]bool
	startedAt time.Time
	now       func() time.Time
}

// NewSystemService creates a new SystemService. features lists optional
// capabilities reported by the version endpoint.
func NewSystemService(db *sql.DB, features map[string]bool) *SystemService {
	if features == nil {
		features = map[string]bool{}
	}
	return &SystemService{
		db:        db,
		features:  features,
		startedAt: time.Now().UTC(),
		now:       time.Now,
	}
}

// Health pings the database. The returned status is filled in either way;
// err is the ping failure.
func (s *SystemService) Health(ctx context.Context) (model.HealthStatus, error) {
	status := model.HealthStatus{
		Status:   "healthy",
		Database: "connected",
		Uptime:   s.now().Sub(s.startedAt).Round(time.Second).String(),
	}

	if err := database.HealthCheck(ctx, s.db); err != nil {
		status.Status = "unhealthy"
		status.Database = "disconnected"
		status.Error = err.Error()
		return status, err
	}

	return status, nil
}

// GetVersionInfo reports the application version and the schema version of
// the database.
func (s *SystemService) GetVersionInfo(ctx context.Context) (model.VersionInfo, error) {
	current, pending, err := database.Status(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	info := model.VersionInfo{
		AppVersion:      version.Version,
		GoVersion:       runtime.Version(),
		DbVersion:       strconv.FormatInt(current, 10),
		StartedAt:       s.startedAt,
		Features:        s.features,
		MigrationNeeded: pending,
	}
	if pending {
		msg := "Database schema is behind the application; run migrations"
		info.MigrationMessage = &msg
	}

	return info, nil
}
