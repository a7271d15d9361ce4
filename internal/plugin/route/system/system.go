// Package system mounts the health, readiness and metrics endpoints.
package system

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/chirino/docmodel/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	registryroute "github.com/chirino/docmodel/internal/registry/route"
)

var ready atomic.Bool

const readinessTimeout = 2 * time.Second

// MarkReady signals that the service has finished initializing and is ready to
// serve traffic. Call this once StartServer has completed successfully.
func MarkReady() {
	ready.Store(true)
}

func init() {
	registryroute.Register(registryroute.Plugin{
		Order: 0,
		Type:  registryroute.RouteTypeManagement,
		Loader: func(r *gin.Engine, mm *model.ModelManager) error {
			var check func(context.Context) error
			if mm != nil {
				check = mm.Ping
			}
			return mountRoutes(r, check)
		},
	})
}

// mountRoutes mounts the endpoints. Once ready, /ready also runs check (when
// non-nil) and reports unavailable while it fails.
func mountRoutes(r *gin.Engine, check func(context.Context) error) error {
	// Liveness: process is up
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if !ready.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
			return
		}
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return nil
}
