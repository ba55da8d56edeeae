// Package catalog exposes product, category, and discovery business rules.
package catalog

import (
	"context"

	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
)

const (
	trendingCount         = 4
	recommendationsOffset = 4
	recommendationsCount  = 3
)

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Store storage.Store
}

// Service exposes business rules for catalog browsing and admin management.
type Service interface {
	ListProducts(ctx context.Context, filters storage.ProductFilters) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (CategoryDTO, error)
	Trending(ctx context.Context) ([]ProductDTO, error)
	Recommendations(ctx context.Context) ([]ProductDTO, error)
}

// CreateProductInput carries a validated admin create payload.
type CreateProductInput struct {
	Title              string
	Description        string
	Category           string
	Condition          string
	Price              float64
	OriginalPrice      float64
	DiscountPercentage int
	Location           string
	IsVerified         bool
	IsNewWithTags      bool
	ImageURL           string
	SellerID           int64
}

// UpdateProductInput carries a validated admin patch payload; nil fields are
// left untouched.
type UpdateProductInput struct {
	Title              *string
	Description        *string
	Category           *string
	Condition          *string
	Price              *float64
	OriginalPrice      *float64
	DiscountPercentage *int
	Location           *string
	IsVerified         *bool
	IsNewWithTags      *bool
	ImageURL           *string
}

// CreateCategoryInput carries a validated category payload.
type CreateCategoryInput struct {
	Name     string
	ImageURL string
}

type service struct {
	store storage.Store
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	return &service{store: params.Store}, nil
}

func (s *service) ListProducts(ctx context.Context, filters storage.ProductFilters) ([]ProductDTO, error) {
	products, err := s.store.ListProducts(ctx, filters)
	if err != nil {
		return nil, err
	}
	return ToProductDTOs(products), nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (ProductDTO, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return ProductDTO{}, err
	}
	return ToProductDTO(*product), nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (ProductDTO, error) {
	condition, err := enums.ParseProductCondition(input.Condition)
	if err != nil {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	product, err := s.store.CreateProduct(ctx, storage.NewProduct{
		Title:              input.Title,
		Description:        input.Description,
		Category:           input.Category,
		Condition:          condition,
		Price:              input.Price,
		OriginalPrice:      input.OriginalPrice,
		DiscountPercentage: input.DiscountPercentage,
		Location:           input.Location,
		IsVerified:         input.IsVerified,
		IsNewWithTags:      input.IsNewWithTags,
		ImageURL:           input.ImageURL,
		SellerID:           input.SellerID,
	})
	if err != nil {
		return ProductDTO{}, err
	}
	return ToProductDTO(*product), nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (ProductDTO, error) {
	patch := storage.ProductPatch{
		Title:              input.Title,
		Description:        input.Description,
		Category:           input.Category,
		Price:              input.Price,
		OriginalPrice:      input.OriginalPrice,
		DiscountPercentage: input.DiscountPercentage,
		Location:           input.Location,
		IsVerified:         input.IsVerified,
		IsNewWithTags:      input.IsNewWithTags,
		ImageURL:           input.ImageURL,
	}
	if input.Condition != nil {
		condition, err := enums.ParseProductCondition(*input.Condition)
		if err != nil {
			return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		patch.Condition = &condition
	}

	product, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return ProductDTO{}, err
	}
	return ToProductDTO(*product), nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, ToCategoryDTO(category))
	}
	return dtos, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (CategoryDTO, error) {
	category, err := s.store.CreateCategory(ctx, storage.NewCategory{
		Name:     input.Name,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		return CategoryDTO{}, err
	}
	return ToCategoryDTO(*category), nil
}

// Trending returns the leading slice of the catalog.
func (s *service) Trending(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.store.ListProducts(ctx, storage.ProductFilters{})
	if err != nil {
		return nil, err
	}
	if len(products) > trendingCount {
		products = products[:trendingCount]
	}
	return ToProductDTOs(products), nil
}

// Recommendations returns a fixed window further into the catalog so the
// landing page and the trending rail do not show the same items.
func (s *service) Recommendations(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.store.ListProducts(ctx, storage.ProductFilters{})
	if err != nil {
		return nil, err
	}
	if len(products) <= recommendationsOffset {
		return []ProductDTO{}, nil
	}
	products = products[recommendationsOffset:]
	if len(products) > recommendationsCount {
		products = products[:recommendationsCount]
	}
	return ToProductDTOs(products), nil
}
