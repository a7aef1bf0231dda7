package jobs

import (
	"fmt"
	"log/slog"

	"console/internal/core/application/pipeline"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	catalogRefreshJob *CatalogRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(catalog *pipeline.ServiceTypeCatalog, refreshSpec string, logger *slog.Logger) *JobManager {
	return &JobManager{
		catalogRefreshJob: NewCatalogRefreshJob(catalog, refreshSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.catalogRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start catalog refresh job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.catalogRefreshJob.Stop()
}
