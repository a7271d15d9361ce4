// Package model is the data access layer. All application reads and writes go
// through a ModelManager and the per-entity controllers built on
// internal/model/base.
package model

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/chirino/docmodel/internal/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ModelManager owns the store connection. It holds no per-request state and
// is shared by pointer across goroutines; the driver pools connections.
type ModelManager struct {
	client *mongo.Client
}

// NewModelManager connects to the store described by cfg.
func NewModelManager(ctx context.Context, cfg *config.Config) (*ModelManager, error) {
	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, &CantCreateModelManagerProviderError{Reason: err.Error()}
	}
	log.Debug("Model manager connected")
	return &ModelManager{client: client}, nil
}

// NewModelManagerFromClient wraps an already connected client.
func NewModelManagerFromClient(client *mongo.Client) *ModelManager {
	return &ModelManager{client: client}
}

// Database returns the logical database of a tenant.
func (mm *ModelManager) Database(tenantID string) *mongo.Database {
	return mm.client.Database(tenantID)
}

// Collection returns a collection inside a tenant's database.
func (mm *ModelManager) Collection(tenantID, name string) *mongo.Collection {
	return mm.Database(tenantID).Collection(name)
}

// NewWithTxn would return a manager bound to a transactional session.
// Transactions are not supported.
func (mm *ModelManager) NewWithTxn(_ context.Context) (*ModelManager, error) {
	return nil, ErrNoSession
}

// Ping checks that the store is reachable.
func (mm *ModelManager) Ping(ctx context.Context) error {
	return mm.client.Ping(ctx, nil)
}

// Close disconnects from the store.
func (mm *ModelManager) Close(ctx context.Context) error {
	return mm.client.Disconnect(ctx)
}
