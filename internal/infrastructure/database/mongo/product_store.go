// internal/infrastructure/database/mongo/product_store.go
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/domain/product"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const productsCollection = "products"

type productStore struct {
	collection *mongo.Collection
}

// NewProductStore creates a catalog store backed by the products collection.
func NewProductStore(db *mongo.Database) product.Store {
	return &productStore{collection: db.Collection(productsCollection)}
}

func (s *productStore) List(ctx context.Context) ([]product.Product, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []product.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (s *productStore) FindByName(ctx context.Context, name string) (*product.Product, error) {
	var p product.Product
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (s *productStore) Insert(ctx context.Context, p *product.Product) error {
	if _, err := s.collection.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return product.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (s *productStore) Update(ctx context.Context, name string, upd product.Update) error {
	set := bson.M{}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Img != nil {
		set["img"] = *upd.Img
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if len(set) == 0 {
		return nil
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"name": name}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (s *productStore) Delete(ctx context.Context, name string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return product.ErrNotFound
	}
	return nil
}
