// internal/infrastructure/database/mongo/connection.go
package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB client and database handle
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewConnection creates a new MongoDB connection
func NewConnection(cfg *config.Config) (*Client, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(cfg.Mongo.ConnectTimeout).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(cfg.Mongo.MaxPoolSize)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("MongoDB connection established")

	return &Client{
		client: client,
		db:     client.Database(cfg.Mongo.Database),
	}, nil
}

// Close disconnects from MongoDB
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// Health checks the MongoDB connection health
func (c *Client) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return c.client.Ping(ctx, nil)
}

// Database returns the database handle
func (c *Client) Database() *mongo.Database {
	return c.db
}

// EnsureIndexes creates the indexes the stores rely on. Safe to call on every
// startup.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	carts := c.db.Collection(cartsCollection)
	_, err := carts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// one active cart per account is the hot lookup
			Keys: bson.D{{Key: "account", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			// order numbers are globally unique; sparse because active carts
			// have no trade number yet
			Keys:    bson.D{{Key: "merchant_trade_no", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create carts indexes: %w", err)
	}

	users := c.db.Collection(usersCollection)
	_, err = users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "account", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	products := c.db.Collection(productsCollection)
	_, err = products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create products indexes: %w", err)
	}

	return nil
}
