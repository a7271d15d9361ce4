// Package testmongo starts disposable MongoDB instances for integration tests.
package testmongo

import (
	"context"
	"testing"
	"time"

	"github.com/chirino/docmodel/internal/config"
	"github.com/chirino/docmodel/internal/model"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// StartMongo starts a disposable MongoDB container and returns its connection URI.
// Tests that need it are skipped under -short.
func StartMongo(tb testing.TB) string {
	tb.Helper()
	if testing.Short() {
		tb.Skip("skipping MongoDB container test in -short mode")
	}

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		tb.Fatalf("start mongodb container: %v", err)
	}

	tb.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			tb.Errorf("terminate mongodb container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		tb.Fatalf("build mongodb connection string: %v", err)
	}

	return uri
}

// NewModelManager starts a container and returns a manager connected to it.
// The manager is closed when the test ends.
func NewModelManager(tb testing.TB) *model.ModelManager {
	tb.Helper()

	cfg := config.DefaultConfig()
	cfg.DBURL = StartMongo(tb)

	mm, err := model.NewModelManager(context.Background(), &cfg)
	if err != nil {
		tb.Fatalf("connect model manager: %v", err)
	}
	tb.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mm.Close(ctx); err != nil {
			tb.Errorf("close model manager: %v", err)
		}
	})
	return mm
}
