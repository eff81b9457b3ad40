// internal/infrastructure/database/mongo/cart_store.go
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cartsCollection = "carts"

// cartStore implements cart.Store on a single MongoDB collection. Active
// carts and historical orders are the same documents in different statuses;
// every mutation is a conditional single-document update, which is the only
// concurrency primitive this design needs.
type cartStore struct {
	collection *mongo.Collection
}

// NewCartStore creates a cart store backed by the carts collection.
func NewCartStore(db *mongo.Database) cart.Store {
	return &cartStore{collection: db.Collection(cartsCollection)}
}

func activeFilter(account string) bson.M {
	return bson.M{"account": account, "status": cart.StatusActive}
}

func (s *cartStore) FindActive(ctx context.Context, account string) (*cart.Cart, error) {
	var c cart.Cart
	err := s.collection.FindOne(ctx, activeFilter(account)).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &c, nil
}

func (s *cartStore) UpsertActive(ctx context.Context, account string, items []cart.Item) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"account":    account,
			"status":     cart.StatusActive,
			"items":      items,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, activeFilter(account), update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

func (s *cartStore) SetItemQuantity(ctx context.Context, account, name string, quantity int) error {
	filter := bson.M{
		"account":    account,
		"status":     cart.StatusActive,
		"items.name": name,
	}
	update := bson.M{
		"$set": bson.M{
			"items.$.quantity": quantity,
			"updated_at":       time.Now().UTC(),
		},
	}

	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update item quantity: %w", err)
	}
	if result.MatchedCount == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (s *cartStore) PullItem(ctx context.Context, account, name string) error {
	update := bson.M{
		"$pull": bson.M{
			"items": bson.M{"name": name},
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	result, err := s.collection.UpdateOne(ctx, activeFilter(account), update)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	// ModifiedCount, not MatchedCount: a cart that exists but never held the
	// item reads as not found too
	if result.ModifiedCount == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (s *cartStore) ClearItems(ctx context.Context, account string) error {
	update := bson.M{
		"$set": bson.M{
			"items":      []cart.Item{},
			"updated_at": time.Now().UTC(),
		},
	}
	// no upsert: clearing a cart that does not exist is a no-op
	if _, err := s.collection.UpdateOne(ctx, activeFilter(account), update); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *cartStore) FindCheckoutable(ctx context.Context, account string) (*cart.Cart, error) {
	c, err := s.FindActive(ctx, account)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}

	// no active cart; a still-pending order can be checked out again
	filter := bson.M{"account": account, "status": cart.StatusPending}
	opts := options.FindOne().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	var pending cart.Cart
	if err := s.collection.FindOne(ctx, filter, opts).Decode(&pending); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get pending cart: %w", err)
	}
	return &pending, nil
}

func (s *cartStore) BeginCheckout(ctx context.Context, account string, from cart.Status, p cart.Pending) error {
	update := bson.M{
		"$set": bson.M{
			"status":            cart.StatusPending,
			"merchant_trade_no": p.MerchantTradeNo,
			"amount_snapshot":   p.AmountSnapshot,
			"items_snapshot":    p.ItemsSnapshot,
			"provider":          p.Provider,
			"paid_at":           nil,
			"updated_at":        time.Now().UTC(),
		},
		"$inc": bson.M{"attempt": 1},
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"account": account, "status": from}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return cart.ErrDuplicateTradeNo
		}
		return fmt.Errorf("failed to begin checkout: %w", err)
	}
	if result.MatchedCount == 0 {
		return cart.ErrCartNotFound
	}
	return nil
}

func (s *cartStore) FindByTradeNo(ctx context.Context, tradeNo string) (*cart.Cart, error) {
	var c cart.Cart
	err := s.collection.FindOne(ctx, bson.M{"merchant_trade_no": tradeNo}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &c, nil
}

func (s *cartStore) ResolvePending(ctx context.Context, tradeNo string, r cart.Resolution) (bool, error) {
	set := bson.M{
		"provider_payload": r.Payload,
		"updated_at":       time.Now().UTC(),
	}
	if r.Succeeded {
		set["status"] = cart.StatusSuccess
		set["provider_trade_no"] = r.ProviderTradeNo
		set["paid_at"] = r.PaidAt
	} else {
		// restore the cart for another attempt
		set["status"] = cart.StatusActive
		set["provider_trade_no"] = nil
		set["paid_at"] = nil
		set["last_payment_failed"] = true
		set["failure_reason"] = r.FailureReason
	}

	// the pending status in the filter makes concurrent deliveries race-safe:
	// whoever matches first wins, everyone else matches zero documents
	filter := bson.M{"merchant_trade_no": tradeNo, "status": cart.StatusPending}

	result, err := s.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to resolve order: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (s *cartStore) ListOrders(ctx context.Context, account string) ([]cart.Cart, error) {
	filter := bson.M{
		"account": account,
		"status":  bson.M{"$ne": cart.StatusActive},
	}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []cart.Cart
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}
