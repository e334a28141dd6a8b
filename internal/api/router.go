package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP handlers with their dependencies and returns the
// gin engine. Handlers only see the Checker interface, so front ends and tests
// stay unaware of the concrete resolver.
func NewRouter(log *slog.Logger, checker Checker, reg *prometheus.Registry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	handler := &CheckHandler{Log: log, Checker: checker}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		v1.POST("/checks", handler.Check)
		v1.POST("/checks/export", handler.Export)
	}

	return router
}

// requestLogger logs end-to-end request duration and status for basic observability.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.InfoContext(c.Request.Context(), "Request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
