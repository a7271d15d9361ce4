package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chirino/docmodel/internal/config"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// RunningServer is an HTTP server bound to its port.
type RunningServer struct {
	Addr   net.Addr
	Port   int
	Server *http.Server
	Close  func(ctx context.Context) error
}

// startHTTPServer listens on cfg.Port (0 picks a free port) and serves
// HTTP/1.1 and cleartext HTTP/2.
func startHTTPServer(name string, cfg config.ListenerConfig, handler http.Handler) (*RunningServer, error) {
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = 5 * time.Second
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("%s listen failed: %w", name, err)
	}

	server := &http.Server{
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	go func() {
		if err := server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "server", name, "err", err)
		}
	}()

	port := 0
	if tcpAddr, ok := lis.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}

	var closeOnce sync.Once
	closeFn := func(ctx context.Context) error {
		var shutdownErr error
		closeOnce.Do(func() {
			if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
				shutdownErr = err
			}
		})
		return shutdownErr
	}

	return &RunningServer{
		Addr:   lis.Addr(),
		Port:   port,
		Server: server,
		Close:  closeFn,
	}, nil
}
