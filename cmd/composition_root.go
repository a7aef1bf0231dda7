package cmd

import (
	"log/slog"
	"os"

	intakehttp "console/internal/adapters/in/http"
	"console/internal/adapters/out/gateway"
	"console/internal/core/application/pipeline"
	"console/internal/core/ports"
	"console/internal/jobs"
)

type CompositionRoot struct {
	config Config
	logger *slog.Logger

	serviceability ports.ServiceabilityGateway
	rates          ports.RateGateway
	ewaybills      ports.EwaybillGateway
	uploads        ports.UploadGateway
	orders         ports.OrderGateway
	catalog        *pipeline.ServiceTypeCatalog
}

func NewCompositionRoot(config Config) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	client := gateway.NewClient(
		config.GatewayBaseURL,
		func() string { return config.GatewayToken },
		func() {
			logger.Warn("gateway session expired, requests will fail until the token is rotated")
		},
		logger,
	)

	return CompositionRoot{
		config:         config,
		logger:         logger,
		serviceability: gateway.NewServiceabilityClient(client),
		rates:          gateway.NewRateClient(client),
		ewaybills:      gateway.NewEwaybillClient(client),
		uploads:        gateway.NewUploadClient(client),
		orders:         gateway.NewOrderClient(client),
		catalog:        pipeline.NewServiceTypeCatalog(gateway.NewCatalogClient(client), logger),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// CreatePipelineFactory returns the per-session pipeline constructor used by
// the HTTP facade.
func (c *CompositionRoot) CreatePipelineFactory() intakehttp.PipelineFactory {
	return func(notifier ports.Notifier) *pipeline.Pipeline {
		return pipeline.New(pipeline.Config{
			Serviceability: c.serviceability,
			Rates:          c.rates,
			Ewaybills:      c.ewaybills,
			Uploads:        c.uploads,
			Orders:         c.orders,
			Notifier:       notifier,
			Logger:         c.logger,
		})
	}
}

func (c *CompositionRoot) CreateHTTPServer() *intakehttp.Server {
	return intakehttp.NewServer(c.CreatePipelineFactory(), c.catalog, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.catalog, c.config.CatalogRefreshSpec, c.logger)
}
