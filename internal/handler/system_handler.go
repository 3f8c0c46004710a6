package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// MetricsHandler serves the Prometheus metrics endpoint.
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
