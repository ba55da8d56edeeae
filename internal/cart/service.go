// Package cart exposes the per-user shopping cart business surface.
package cart

import (
	"context"

	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
)

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store storage.Store
}

// Service exposes business rules for cart management. Every operation is
// scoped to the calling user; rows belonging to other users read as absent.
type Service interface {
	GetCart(ctx context.Context, userID int64) (CartDTO, error)
	AddItem(ctx context.Context, userID, productID int64, quantity int) (LineDTO, error)
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (LineDTO, error)
	RemoveItem(ctx context.Context, userID, itemID int64) error
}

type service struct {
	store storage.Store
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	return &service{store: params.Store}, nil
}

// GetCart returns the user's cart lines plus the computed order total.
func (s *service) GetCart(ctx context.Context, userID int64) (CartDTO, error) {
	lines, err := s.store.ListCartItems(ctx, userID)
	if err != nil {
		return CartDTO{}, err
	}

	dto := CartDTO{Items: make([]LineDTO, 0, len(lines))}
	for _, line := range lines {
		dto.Items = append(dto.Items, toLineDTO(line))
		dto.Total += line.Product.Price * float64(line.Item.Quantity)
	}
	return dto, nil
}

// AddItem merges quantity into any existing row for the product.
func (s *service) AddItem(ctx context.Context, userID, productID int64, quantity int) (LineDTO, error) {
	item, err := s.store.AddToCart(ctx, userID, productID, quantity)
	if err != nil {
		return LineDTO{}, err
	}
	return s.lineFor(ctx, userID, item.ID)
}

// UpdateItem replaces the row's quantity outright.
func (s *service) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (LineDTO, error) {
	item, err := s.store.UpdateCartItem(ctx, itemID, userID, quantity)
	if err != nil {
		return LineDTO{}, err
	}
	return s.lineFor(ctx, userID, item.ID)
}

// RemoveItem drops the row; removing an absent or foreign row succeeds
// without effect.
func (s *service) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return s.store.RemoveFromCart(ctx, itemID, userID)
}

func (s *service) lineFor(ctx context.Context, userID, itemID int64) (LineDTO, error) {
	lines, err := s.store.ListCartItems(ctx, userID)
	if err != nil {
		return LineDTO{}, err
	}
	for _, line := range lines {
		if line.Item.ID == itemID {
			return toLineDTO(line), nil
		}
	}
	return LineDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
}
