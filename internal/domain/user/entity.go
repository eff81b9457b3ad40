// internal/domain/user/entity.go
package user

import "errors"

// Role levels. Management endpoints require staff or admin; changing another
// user's level requires admin.
const (
	LevelCustomer = 0
	LevelStaff    = 2
	LevelAdmin    = 3
)

var (
	// ErrNotFound is returned when no user carries the requested account.
	ErrNotFound = errors.New("user not found")
	// ErrAccountExists is returned when registering a taken account name.
	ErrAccountExists = errors.New("account already exists")
	// ErrEmailExists is returned when registering a taken email.
	ErrEmailExists = errors.New("email already exists")
	// ErrPhoneExists is returned when registering a taken phone number.
	ErrPhoneExists = errors.New("phone already exists")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid account or password")
	// ErrLevelChangeForbidden is returned when a non-admin tries to change a
	// user's privilege level.
	ErrLevelChangeForbidden = errors.New("not allowed to change level")
)

// User represents a registered account. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	Account  string `bson:"account" json:"account"`
	Username string `bson:"username" json:"username"`
	Password string `bson:"password" json:"-"`
	Phone    string `bson:"phone" json:"phone"`
	Email    string `bson:"email" json:"email"`
	Level    int    `bson:"level" json:"level"`
}

// Update holds the mutable profile fields. Nil fields are left untouched;
// Level changes are gated by the caller's own level.
type Update struct {
	Username *string `json:"username"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Level    *int    `json:"level"`
}
