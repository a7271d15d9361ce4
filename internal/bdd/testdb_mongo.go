package bdd

import (
	"context"
	"fmt"

	"github.com/chirino/docmodel/internal/testutil/cucumber"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoTestDB implements cucumber.TestDB for MongoDB.
type MongoTestDB struct {
	DBURL string
}

var _ cucumber.TestDB = (*MongoTestDB)(nil)

func (m *MongoTestDB) client() (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(m.DBURL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}

func (m *MongoTestDB) DropTenant(ctx context.Context, tenantID string) error {
	client, err := m.client()
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	if err := client.Database(tenantID).Drop(ctx); err != nil {
		return fmt.Errorf("cleanup: failed to drop tenant %s: %w", tenantID, err)
	}
	return nil
}

func (m *MongoTestDB) CountDocuments(ctx context.Context, tenantID, collection string) (int64, error) {
	client, err := m.client()
	if err != nil {
		return 0, err
	}
	defer client.Disconnect(ctx)

	n, err := client.Database(tenantID).Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count %s.%s: %w", tenantID, collection, err)
	}
	return n, nil
}
