package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the process-wide fiberprometheus collector. It registers on the
// default Prometheus registry next to the application metrics, so it is created only once.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.NewWithDefaultRegistry(serviceName)
		prom.SetSkipPaths([]string{"/metrics", "/health/live", "/health/ready"})
	})
	return prom
}

// MetricsMiddleware returns the request instrumentation handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
