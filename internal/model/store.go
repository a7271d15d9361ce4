package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/chirino/docmodel/internal/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func newClient(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	if cfg == nil || cfg.DBURL == "" {
		return nil, errors.New("no database url configured")
	}
	opts := options.Client().ApplyURI(cfg.DBURL)
	if cfg.DBMaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.DBMaxOpenConns))
	}
	if cfg.DBMaxIdleConns > 0 {
		opts.SetMinPoolSize(uint64(cfg.DBMaxIdleConns))
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx := ctx
	if cfg.DBConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DBConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}
