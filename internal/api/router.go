// File: internal/api/router.go
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
)

// NewRouter builds the full gin engine: request-id + logging middleware,
// the two trigger endpoints, a read-only candidate listing, and the
// ambient /healthz + /metrics surface. This is a thin trigger surface,
// not an admin dashboard REST layer.
func NewRouter(h *Handlers, reg *prometheus.Registry, logger logging.Logger, ginMode string) *gin.Engine {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogging(logger))

	router.GET("/healthz", h.Healthz)
	if reg != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		discovery := v1.Group("/discovery")
		{
			discovery.POST("/sessions", h.CreateSession)
			discovery.GET("/sessions/:id", h.GetSession)
			discovery.GET("/candidates", h.ListCandidates)
		}
	}

	return router
}
