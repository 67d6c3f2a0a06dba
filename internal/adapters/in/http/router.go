package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterConfig holds the optional parts of the HTTP surface.
type RouterConfig struct {
	SwaggerEnabled bool
	// HealthCheck is probed by /health; nil reports healthy unconditionally.
	HealthCheck func(ctx context.Context) error
}

type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewRouter builds the echo instance serving the work order API, /health, /metrics and,
// when enabled, the API documentation under /swagger/.
func NewRouter(server *Server, gatherer prometheus.Gatherer, cfg RouterConfig, logger *zap.Logger) (*echo.Echo, error) {
	logger = logger.Named("http")

	doc, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	validateRequest, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))

	e.GET("/health", healthHandler(cfg.HealthCheck))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if cfg.SwaggerEnabled {
		if err = registerSwagger(doc); err != nil {
			return nil, fmt.Errorf("register api docs: %w", err)
		}
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api/v1", RequireCaller(), validateRequest)
	api.GET("/work-orders", server.ListWorkOrders)
	api.POST("/work-orders", server.CreateWorkOrder)
	api.GET("/work-orders/:id", server.GetWorkOrder)
	api.PATCH("/work-orders/:id", server.UpdateWorkOrder)
	api.DELETE("/work-orders/:id", server.DeleteWorkOrder)
	api.PATCH("/work-orders/:id/status", server.ChangeWorkOrderStatus)
	api.PUT("/work-orders/:id/items/:itemId/supplies/:supplyId", server.AddSupplyToItem)
	api.DELETE("/work-orders/:id/items/:itemId/supplies/:supplyId", server.RemoveSupplyFromItem)

	return e, nil
}

func healthHandler(check func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check != nil {
			if err := check(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: err.Error()})
			}
		}
		return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	}
}
