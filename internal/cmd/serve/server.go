package serve

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/chirino/docmodel/internal/config"
	"github.com/chirino/docmodel/internal/model"
	"github.com/chirino/docmodel/internal/plugin/route/jsonrpc"
	routesystem "github.com/chirino/docmodel/internal/plugin/route/system"
	registryroute "github.com/chirino/docmodel/internal/registry/route"
	"github.com/chirino/docmodel/internal/rpc"
	"github.com/chirino/docmodel/internal/security"
	"github.com/gin-gonic/gin"
)

// Server holds the running server and its subsystems.
type Server struct {
	Config     *config.Config
	Models     *model.ModelManager
	Router     *gin.Engine
	RPC        *rpc.Router
	Running    *RunningServer
	Management *RunningServer
}

// Shutdown drains the listeners and disconnects from the store.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.Management != nil {
		errs = append(errs, s.Management.Close(ctx))
	}
	errs = append(errs, s.Running.Close(ctx))
	errs = append(errs, s.Models.Close(ctx))
	return errors.Join(errs...)
}

// StartServer connects to the store and starts serving. Use
// cfg.Listener.Port=0 for a random port. Actual port: Server.Running.Port.
func StartServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	log.Info("Starting docmodel service",
		"httpPort", cfg.Listener.Port,
		"managementPort", cfg.Management.Port,
		"managementEnabled", cfg.ManagementListenerEnabled,
	)

	// Initialize Prometheus metrics with configured constant labels.
	metricsLabels, err := security.ParseMetricsLabels(cfg.MetricsLabels)
	if err != nil {
		return nil, fmt.Errorf("invalid --metrics-labels: %w", err)
	}
	security.InitMetrics(metricsLabels)

	mm, err := model.NewModelManager(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Set up gin
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.ManagementAccessLog {
		router.Use(security.AccessLogMiddleware())
	} else {
		router.Use(security.AccessLogMiddleware("/health", "/ready", "/metrics"))
	}
	router.Use(security.MetricsMiddleware())
	router.Use(maxBodySizeMiddleware(cfg.MaxBodySize))
	if cfg.CORSOrigins != "" {
		router.Use(corsMiddleware(cfg.CORSOrigins))
	}

	for _, loader := range registryroute.MainRouteLoaders() {
		if err := loader(router, mm); err != nil {
			_ = mm.Close(ctx)
			return nil, fmt.Errorf("failed to load routes: %w", err)
		}
	}

	rpcRouter := rpc.AllRoutes()
	jsonrpc.MountRoutes(router, mm, rpcRouter, security.RequestContextMiddleware())

	// Management routes go to a dedicated listener when one is configured,
	// otherwise onto the main router.
	var management *RunningServer
	mgmtRouter := router
	if cfg.ManagementListenerEnabled {
		mgmtRouter = gin.New()
		mgmtRouter.Use(gin.Recovery())
		if cfg.ManagementAccessLog {
			mgmtRouter.Use(security.AccessLogMiddleware())
		}
	}
	for _, loader := range registryroute.ManagementRouteLoaders() {
		if err := loader(mgmtRouter, mm); err != nil {
			_ = mm.Close(ctx)
			return nil, fmt.Errorf("failed to load management routes: %w", err)
		}
	}
	if cfg.ManagementListenerEnabled {
		management, err = startHTTPServer("management", cfg.Management, mgmtRouter)
		if err != nil {
			_ = mm.Close(ctx)
			return nil, fmt.Errorf("failed to start management server: %w", err)
		}
		log.Info("Management server listening", "port", management.Port)
	}

	running, err := startHTTPServer("main", cfg.Listener, router)
	if err != nil {
		if management != nil {
			_ = management.Close(ctx)
		}
		_ = mm.Close(ctx)
		return nil, err
	}

	log.Info("Server listening", "port", running.Port, "rpcMethods", len(rpcRouter.Methods()))

	routesystem.MarkReady()
	return &Server{
		Config:     cfg,
		Models:     mm,
		Router:     router,
		RPC:        rpcRouter,
		Running:    running,
		Management: management,
	}, nil
}
