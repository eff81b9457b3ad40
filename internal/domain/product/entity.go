// internal/domain/product/entity.go
package product

import "errors"

var (
	// ErrNotFound is returned when no product carries the requested name.
	ErrNotFound = errors.New("product not found")
	// ErrAlreadyExists is returned when creating a product whose name is taken.
	ErrAlreadyExists = errors.New("product already exists")
	// ErrCacheMiss is returned by Cache implementations when the key is absent.
	ErrCacheMiss = errors.New("product not in cache")
)

// Product represents a catalog entry. The name is the natural key.
type Product struct {
	Name        string `bson:"name" json:"name"`
	Price       int    `bson:"price" json:"price"`
	Img         string `bson:"img" json:"img"`
	Description string `bson:"description" json:"description"`
}

// Update holds the mutable fields for a catalog update. Nil fields are left
// untouched.
type Update struct {
	Price       *int    `json:"price"`
	Img         *string `json:"img"`
	Description *string `json:"description"`
}

// IsEmpty reports whether the update would change nothing.
func (u Update) IsEmpty() bool {
	return u.Price == nil && u.Img == nil && u.Description == nil
}
