// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// Store is the persistence contract for user accounts.
type Store interface {
	FindByAccount(ctx context.Context, account string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	Insert(ctx context.Context, u *User) error
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, account string, upd Update) error
	Delete(ctx context.Context, account string) error
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token plus the public identity fields.
type LoginResponse struct {
	Token    string `json:"token"`
	Account  string `json:"account"`
	Username string `json:"username"`
	Level    int    `json:"level"`
}

// Service handles user business logic
type Service struct {
	store     Store
	passwords *auth.PasswordManager
	tokens    *auth.JWTManager
	logger    *logrus.Logger
}

// NewService creates a new user service
func NewService(store Store, cfg *config.Config, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		store:     store,
		passwords: auth.NewPasswordManager(cfg),
		tokens:    auth.NewJWTManager(cfg),
		logger:    logger,
	}
}

// Register creates a new customer account. Account, email and phone must each
// be unique.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if err := s.passwords.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.checkTaken(ctx, req); err != nil {
		return nil, err
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Account:  req.Account,
		Username: req.Username,
		Password: hash,
		Phone:    req.Phone,
		Email:    req.Email,
		Level:    LevelCustomer,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithField("account", u.Account).Info("user registered")
	return u, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := s.store.FindByAccount(ctx, req.Account)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.passwords.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.Account, u.Username, u.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{
		Token:    token,
		Account:  u.Account,
		Username: u.Username,
		Level:    u.Level,
	}, nil
}

// Get returns one user by account.
func (s *Service) Get(ctx context.Context, account string) (*User, error) {
	return s.store.FindByAccount(ctx, account)
}

// List returns all users, for the management screens.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// UpdateByAccount applies a profile update. Changing Level requires the
// caller to be an admin.
func (s *Service) UpdateByAccount(ctx context.Context, account string, upd Update, callerLevel int) error {
	if upd.Level != nil && callerLevel < LevelAdmin {
		return ErrLevelChangeForbidden
	}
	return s.store.Update(ctx, account, upd)
}

// DeleteByAccount removes a user.
func (s *Service) DeleteByAccount(ctx context.Context, account string) error {
	if err := s.store.Delete(ctx, account); err != nil {
		return err
	}
	s.logger.WithField("account", account).Info("user deleted")
	return nil
}

func (s *Service) checkTaken(ctx context.Context, req *RegisterRequest) error {
	if _, err := s.store.FindByAccount(ctx, req.Account); err == nil {
		return ErrAccountExists
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check account: %w", err)
	}

	if _, err := s.store.FindByEmail(ctx, req.Email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.store.FindByPhone(ctx, req.Phone); err == nil {
		return ErrPhoneExists
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check phone: %w", err)
	}

	return nil
}
