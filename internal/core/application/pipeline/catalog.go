package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"console/internal/core/ports"
)

// fallbackServiceTypes is served when the catalog has never been fetched
// successfully. The two entries match the service matrix defaults.
var fallbackServiceTypes = []string{"Standard", "Express"}

// ServiceTypeCatalog caches the server-provided service-type enumeration the
// intake form selects from. Refresh failures keep the last good value, so a
// flaky catalog endpoint never empties the selector.
type ServiceTypeCatalog struct {
	gw     ports.CatalogGateway
	logger *slog.Logger

	mu    sync.RWMutex
	types []string
}

// NewServiceTypeCatalog creates a catalog primed with the fallback list.
func NewServiceTypeCatalog(gw ports.CatalogGateway, logger *slog.Logger) *ServiceTypeCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceTypeCatalog{
		gw:     gw,
		logger: logger.With("component", "service_type_catalog"),
		types:  fallbackServiceTypes,
	}
}

// Refresh fetches the current enumeration. An empty or failed fetch leaves
// the cached value untouched and returns the error for the caller to log.
func (c *ServiceTypeCatalog) Refresh(ctx context.Context) error {
	types, err := c.gw.ServiceTypes(ctx, "")
	if err != nil {
		c.logger.Warn("service type refresh failed, keeping cached list", "error", err)
		return err
	}
	if len(types) == 0 {
		c.logger.Warn("service type refresh returned empty list, keeping cached list")
		return nil
	}

	c.mu.Lock()
	c.types = types
	c.mu.Unlock()
	return nil
}

// ServiceTypes returns a copy of the cached enumeration.
func (c *ServiceTypeCatalog) ServiceTypes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.types...)
}
