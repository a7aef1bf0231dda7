package jobs

import (
	"context"
	"log/slog"

	"console/internal/core/application/pipeline"

	"github.com/robfig/cron/v3"
)

// defaultRefreshSpec refreshes the catalog every 15 minutes.
const defaultRefreshSpec = "0 */15 * * * *"

// CatalogRefreshJob keeps the service-type catalog current. The catalog is
// refreshed once immediately on start, then on the cron schedule.
type CatalogRefreshJob struct {
	catalog *pipeline.ServiceTypeCatalog
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCatalogRefreshJob creates the refresh job. An empty spec selects the
// default 15-minute schedule.
func NewCatalogRefreshJob(catalog *pipeline.ServiceTypeCatalog, spec string, logger *slog.Logger) *CatalogRefreshJob {
	if spec == "" {
		spec = defaultRefreshSpec
	}
	return &CatalogRefreshJob{
		catalog: catalog,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "catalog_refresh_job"),
	}
}

// Start primes the catalog and begins the periodic refresh.
func (j *CatalogRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		if err := j.catalog.Refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Catalog refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	// First fetch happens inline so the very first session already sees the
	// server-provided list when the catalog endpoint is healthy.
	ctx := context.Background()
	if err := j.catalog.Refresh(ctx); err != nil {
		j.logger.WarnContext(ctx, "Initial catalog fetch failed, using fallback list", "error", err)
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Catalog refresh job started", "spec", j.spec)
	return nil
}

// Stop stops the catalog refresh job.
func (j *CatalogRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Catalog refresh job stopped")
}
