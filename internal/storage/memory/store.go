// Package memory provides the map-backed Store used in development and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	"github.com/adaezeumeh/thriftline-backend/pkg/db/models"
	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
)

// Store keeps all entities in process-local maps. A single mutex guards every
// write path, which also serializes add-to-cart for a given (user, product)
// pair and closes the read-then-write race on quantity accumulation.
type Store struct {
	mu sync.RWMutex

	users      map[int64]models.User
	products   map[int64]models.Product
	categories map[int64]models.Category
	cartItems  map[int64]models.CartItem

	userSeq     int64
	productSeq  int64
	categorySeq int64
	cartItemSeq int64
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		users:      make(map[int64]models.User),
		products:   make(map[int64]models.Product),
		categories: make(map[int64]models.Category),
		cartItems:  make(map[int64]models.CartItem),
	}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(username)
	for _, user := range s.users {
		if strings.ToLower(user.Username) == needle {
			u := user
			return &u, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(email)
	for _, user := range s.users {
		if strings.ToLower(user.Email) == needle {
			u := user
			return &u, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

func (s *Store) CreateUser(_ context.Context, input storage.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := strings.ToLower(input.Username)
	email := strings.ToLower(input.Email)
	for _, user := range s.users {
		if strings.ToLower(user.Username) == username {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		if strings.ToLower(user.Email) == email {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
	}

	role := input.Role
	if role == "" {
		role = enums.UserRoleUser
	}

	s.userSeq++
	user := models.User{
		ID:           s.userSeq,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FullName:     input.FullName,
		Location:     input.Location,
		Phone:        input.Phone,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user
	return &user, nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &product, nil
}

func (s *Store) ListProducts(_ context.Context, filters storage.ProductFilters) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		if matchesFilters(product, filters) {
			results = append(results, product)
		}
	}
	return results, nil
}

func matchesFilters(product models.Product, filters storage.ProductFilters) bool {
	if filters.Category != "" && product.Category != filters.Category {
		return false
	}
	if filters.Condition != "" && string(product.Condition) != filters.Condition {
		return false
	}
	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		title := strings.ToLower(product.Title)
		description := strings.ToLower(product.Description)
		if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
			return false
		}
	}
	if filters.MinPrice != nil && product.Price < *filters.MinPrice {
		return false
	}
	if filters.MaxPrice != nil && product.Price > *filters.MaxPrice {
		return false
	}
	return true
}

func (s *Store) CreateProduct(_ context.Context, input storage.NewProduct) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.productSeq++
	product := models.Product{
		ID:                 s.productSeq,
		Title:              input.Title,
		Description:        input.Description,
		Category:           input.Category,
		Condition:          input.Condition,
		Price:              input.Price,
		OriginalPrice:      input.OriginalPrice,
		DiscountPercentage: input.DiscountPercentage,
		Location:           input.Location,
		IsVerified:         input.IsVerified,
		IsNewWithTags:      input.IsNewWithTags,
		ImageURL:           input.ImageURL,
		SellerID:           input.SellerID,
		CreatedAt:          time.Now().UTC(),
	}
	s.products[product.ID] = product
	return &product, nil
}

func (s *Store) UpdateProduct(_ context.Context, id int64, patch storage.ProductPatch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	applyPatch(&product, patch)
	s.products[id] = product
	return &product, nil
}

func applyPatch(product *models.Product, patch storage.ProductPatch) {
	if patch.Title != nil {
		product.Title = *patch.Title
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Condition != nil {
		product.Condition = *patch.Condition
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		product.OriginalPrice = *patch.OriginalPrice
	}
	if patch.DiscountPercentage != nil {
		product.DiscountPercentage = *patch.DiscountPercentage
	}
	if patch.Location != nil {
		product.Location = *patch.Location
	}
	if patch.IsVerified != nil {
		product.IsVerified = *patch.IsVerified
	}
	if patch.IsNewWithTags != nil {
		product.IsNewWithTags = *patch.IsNewWithTags
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
}

// DeleteProduct removes the listing and cascades to any cart rows that
// reference it, so carts never point at a gone product.
func (s *Store) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	for itemID, item := range s.cartItems {
		if item.ProductID == id {
			delete(s.cartItems, itemID)
		}
	}
	return nil
}

func (s *Store) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Category, 0, len(s.categories))
	for _, category := range s.categories {
		results = append(results, category)
	}
	return results, nil
}

func (s *Store) CreateCategory(_ context.Context, input storage.NewCategory) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, category := range s.categories {
		if category.Name == input.Name {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
	}

	s.categorySeq++
	category := models.Category{
		ID:       s.categorySeq,
		Name:     input.Name,
		ImageURL: input.ImageURL,
	}
	s.categories[category.ID] = category
	return &category, nil
}

func (s *Store) ListCartItems(_ context.Context, userID int64) ([]storage.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]storage.CartLine, 0)
	for _, item := range s.cartItems {
		if item.UserID != userID {
			continue
		}
		product, ok := s.products[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, storage.CartLine{Item: item, Product: product})
	}
	return lines, nil
}

func (s *Store) AddToCart(_ context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	for itemID, item := range s.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += quantity
			s.cartItems[itemID] = item
			return &item, nil
		}
	}

	s.cartItemSeq++
	item := models.CartItem{
		ID:        s.cartItemSeq,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}
	s.cartItems[item.ID] = item
	return &item, nil
}

func (s *Store) UpdateCartItem(_ context.Context, id, userID int64, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartItems[id]
	if !ok || item.UserID != userID {
		// Ownership mismatch reads the same as absence so one user cannot
		// probe another's cart rows.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	item.Quantity = quantity
	s.cartItems[id] = item
	return &item, nil
}

func (s *Store) RemoveFromCart(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartItems[id]
	if ok && item.UserID == userID {
		delete(s.cartItems, id)
	}
	return nil
}
