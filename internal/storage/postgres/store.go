// Package postgres implements the Store contract on top of GORM. The same
// implementation runs against SQLite in tests, so every query sticks to
// syntax both dialects accept.
package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	"github.com/adaezeumeh/thriftline-backend/pkg/db"
	"github.com/adaezeumeh/thriftline-backend/pkg/db/models"
	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
)

// Store persists entities through a shared GORM connection.
type Store struct {
	conn *gorm.DB
}

// New wraps an existing GORM connection.
func New(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

// NewFromClient wraps the application's pooled database client.
func NewFromClient(client *db.Client) *Store {
	return &Store{conn: client.DB()}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.conn.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.conn.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.conn.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, input storage.NewUser) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = enums.UserRoleUser
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FullName:     input.FullName,
		Location:     input.Location,
		Phone:        input.Phone,
		Role:         role,
	}

	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("LOWER(username) = LOWER(?)", input.Username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		if err := tx.Model(&models.User{}).
			Where("LOWER(email) = LOWER(?)", input.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		// The LOWER() unique indexes close the window between the checks
		// above and the insert.
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "account already exists")
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.conn.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) ListProducts(ctx context.Context, filters storage.ProductFilters) ([]models.Product, error) {
	query := s.conn.WithContext(ctx).Model(&models.Product{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Condition != "" {
		query = query.Where("condition = ?", filters.Condition)
	}
	if filters.Search != "" {
		needle := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, input storage.NewProduct) (*models.Product, error) {
	product := models.Product{
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
	}
	if err := s.conn.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch storage.ProductPatch) (*models.Product, error) {
	updates := patchUpdates(patch)

	var product models.Product
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&product, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func patchUpdates(patch storage.ProductPatch) map[string]any {
	updates := make(map[string]any)
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Condition != nil {
		updates["condition"] = *patch.Condition
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.OriginalPrice != nil {
		updates["original_price"] = *patch.OriginalPrice
	}
	if patch.DiscountPercentage != nil {
		updates["discount_percentage"] = *patch.DiscountPercentage
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.IsVerified != nil {
		updates["is_verified"] = *patch.IsVerified
	}
	if patch.IsNewWithTags != nil {
		updates["is_new_with_tags"] = *patch.IsNewWithTags
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	return updates
}

// DeleteProduct removes the listing and any cart rows referencing it in one
// transaction.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Product{}).Error
	})
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.conn.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, input storage.NewCategory) (*models.Category, error) {
	category := models.Category{
		Name:     input.Name,
		ImageURL: input.ImageURL,
	}
	if err := s.conn.WithContext(ctx).Create(&category).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category name already exists")
		}
		return nil, err
	}
	return &category, nil
}

func (s *Store) ListCartItems(ctx context.Context, userID int64) ([]storage.CartLine, error) {
	var items []models.CartItem
	if err := s.conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []storage.CartLine{}, nil
	}

	productIDs := make([]int64, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	var products []models.Product
	if err := s.conn.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	lines := make([]storage.CartLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, storage.CartLine{Item: item, Product: product})
	}
	return lines, nil
}

// AddToCart is a single upsert so concurrent adds for the same
// (user, product) pair accumulate into one row.
func (s *Store) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive number")
	}

	var count int64
	if err := s.conn.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	var item models.CartItem
	err := s.conn.WithContext(ctx).Raw(`
		INSERT INTO cart_items (user_id, product_id, quantity, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + excluded.quantity
		RETURNING id, user_id, product_id, quantity, created_at`,
		userID, productID, quantity,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateCartItem(ctx context.Context, id, userID int64, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive number")
	}

	var item models.CartItem
	err := s.conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.conn.WithContext(ctx).Model(&item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return &item, nil
}

func (s *Store) RemoveFromCart(ctx context.Context, id, userID int64) error {
	return s.conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CartItem{}).Error
}
