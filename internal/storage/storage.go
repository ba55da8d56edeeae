// Package storage defines the repository contract shared by the in-memory and
// Postgres backends. Both implementations must be indistinguishable to
// callers: contract-level failures surface as typed pkg/errors values
// (CodeNotFound, CodeConflict, CodeValidation) regardless of backend.
package storage

import (
	"context"

	"github.com/adaezeumeh/thriftline-backend/pkg/db/models"
	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
)

// ProductFilters captures the optional predicates applied to a catalog
// listing. Zero values mean "no constraint on that dimension"; predicates
// compose conjunctively.
type ProductFilters struct {
	Category  string
	Search    string
	Condition string
	MinPrice  *float64
	MaxPrice  *float64
}

// IsZero reports whether no predicate is set.
func (f ProductFilters) IsZero() bool {
	return f.Category == "" && f.Search == "" && f.Condition == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// NewUser carries the fields required to create an account.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Location     *string
	Phone        *string
	Role         enums.UserRole
}

// NewProduct carries the fields required to create a listing.
type NewProduct struct {
	Title              string
	Description        string
	Category           string
	Condition          enums.ProductCondition
	Price              float64
	OriginalPrice      float64
	DiscountPercentage int
	Location           string
	IsVerified         bool
	IsNewWithTags      bool
	ImageURL           string
	SellerID           int64
}

// ProductPatch describes a partial update; nil fields are left untouched.
type ProductPatch struct {
	Title              *string
	Description        *string
	Category           *string
	Condition          *enums.ProductCondition
	Price              *float64
	OriginalPrice      *float64
	DiscountPercentage *int
	Location           *string
	IsVerified         *bool
	IsNewWithTags      *bool
	ImageURL           *string
}

// NewCategory carries the fields required to register a catalog section.
type NewCategory struct {
	Name     string
	ImageURL string
}

// CartLine is a cart row joined with its product snapshot.
type CartLine struct {
	Item    models.CartItem
	Product models.Product
}

// Store is the repository contract implemented by every backend.
//
// AddToCart is atomic: concurrent calls for the same (userID, productID) pair
// must resolve to a single row whose quantity is the sum of the requested
// quantities.
type Store interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, input NewUser) (*models.User, error)

	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, filters ProductFilters) ([]models.Product, error)
	CreateProduct(ctx context.Context, input NewProduct) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, input NewCategory) (*models.Category, error)

	ListCartItems(ctx context.Context, userID int64) ([]CartLine, error)
	AddToCart(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error)
	UpdateCartItem(ctx context.Context, id, userID int64, quantity int) (*models.CartItem, error)
	RemoveFromCart(ctx context.Context, id, userID int64) error
}
