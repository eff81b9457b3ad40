// internal/domain/user/service_test.go
package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-at-least-32-chars-long"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Security.BcryptCost = 4 // minimum cost keeps the tests fast
	return cfg
}

func newUserService() *user.Service {
	return user.NewService(memory.NewUserStore(), testConfig(), nil)
}

func registerReq(account string) *user.RegisterRequest {
	return &user.RegisterRequest{
		Account:  account,
		Password: "correct horse battery",
		Username: "Alice",
		Phone:    "0912345678",
		Email:    account + "@example.com",
	}
}

func TestRegisterCreatesCustomer(t *testing.T) {
	svc := newUserService()

	u, err := svc.Register(context.Background(), registerReq("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Account)
	assert.Equal(t, user.LevelCustomer, u.Level)
	// the stored password is a hash, never the plaintext
	assert.NotEqual(t, "correct horse battery", u.Password)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newUserService()

	req := registerReq("alice")
	req.Password = "short"

	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestRegisterDuplicateAccount(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), registerReq("alice"))
	require.NoError(t, err)

	dup := registerReq("alice")
	dup.Email = "other@example.com"
	dup.Phone = "0987654321"

	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, user.ErrAccountExists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), registerReq("alice"))
	require.NoError(t, err)

	dup := registerReq("bob")
	dup.Email = "alice@example.com"
	dup.Phone = "0987654321"

	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestLoginIssuesToken(t *testing.T) {
	cfg := testConfig()
	svc := user.NewService(memory.NewUserStore(), cfg, nil)

	_, err := svc.Register(context.Background(), registerReq("alice"))
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &user.LoginRequest{
		Account:  "alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Account)
	assert.Equal(t, user.LevelCustomer, resp.Level)

	claims, err := auth.NewJWTManager(cfg).ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Account)
	assert.Equal(t, user.LevelCustomer, claims.Level)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), registerReq("alice"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &user.LoginRequest{
		Account:  "alice",
		Password: "wrong password!",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownAccount(t *testing.T) {
	svc := newUserService()

	_, err := svc.Login(context.Background(), &user.LoginRequest{
		Account:  "ghost",
		Password: "whatever1234",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUpdateLevelRequiresAdmin(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), registerReq("alice"))
	require.NoError(t, err)

	staff := user.LevelStaff
	err = svc.UpdateByAccount(context.Background(), "alice", user.Update{Level: &staff}, user.LevelStaff)
	assert.ErrorIs(t, err, user.ErrLevelChangeForbidden)

	err = svc.UpdateByAccount(context.Background(), "alice", user.Update{Level: &staff}, user.LevelAdmin)
	require.NoError(t, err)

	u, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.LevelStaff, u.Level)
}

func TestUpdateProfileFields(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), registerReq("alice"))
	require.NoError(t, err)

	name := "Alice L."
	err = svc.UpdateByAccount(context.Background(), "alice", user.Update{Username: &name}, user.LevelCustomer)
	require.NoError(t, err)

	u, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", u.Username)
}

func TestDeleteUser(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), registerReq("alice"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByAccount(context.Background(), "alice"))

	_, err = svc.Get(context.Background(), "alice")
	assert.ErrorIs(t, err, user.ErrNotFound)

	err = svc.DeleteByAccount(context.Background(), "alice")
	assert.ErrorIs(t, err, user.ErrNotFound)
}
