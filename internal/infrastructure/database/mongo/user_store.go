// internal/infrastructure/database/mongo/user_store.go
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/domain/user"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type userStore struct {
	collection *mongo.Collection
}

// NewUserStore creates a user store backed by the users collection.
func NewUserStore(db *mongo.Database) user.Store {
	return &userStore{collection: db.Collection(usersCollection)}
}

func (s *userStore) findOne(ctx context.Context, filter bson.M) (*user.User, error) {
	var u user.User
	err := s.collection.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (s *userStore) FindByAccount(ctx context.Context, account string) (*user.User, error) {
	return s.findOne(ctx, bson.M{"account": account})
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *userStore) FindByPhone(ctx context.Context, phone string) (*user.User, error) {
	return s.findOne(ctx, bson.M{"phone": phone})
}

func (s *userStore) Insert(ctx context.Context, u *user.User) error {
	if _, err := s.collection.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.ErrAccountExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *userStore) List(ctx context.Context) ([]user.User, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []user.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (s *userStore) Update(ctx context.Context, account string, upd user.Update) error {
	set := bson.M{}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Level != nil {
		set["level"] = *upd.Level
	}
	if len(set) == 0 {
		return nil
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"account": account}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (s *userStore) Delete(ctx context.Context, account string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"account": account})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}
