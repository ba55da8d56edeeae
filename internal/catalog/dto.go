package catalog

import (
	"time"

	"github.com/adaezeumeh/thriftline-backend/pkg/db/models"
)

// ProductDTO is the wire representation of a listing.
type ProductDTO struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	Condition          string    `json:"condition"`
	Price              float64   `json:"price"`
	OriginalPrice      float64   `json:"originalPrice"`
	DiscountPercentage int       `json:"discountPercentage"`
	Location           string    `json:"location"`
	IsVerified         bool      `json:"isVerified"`
	IsNewWithTags      bool      `json:"isNewWithTags"`
	ImageURL           string    `json:"imageUrl"`
	SellerID           int64     `json:"sellerId"`
	CreatedAt          time.Time `json:"createdAt"`
}

// CategoryDTO is the wire representation of a catalog section.
type CategoryDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// ToProductDTO maps a stored product onto the wire shape.
func ToProductDTO(product models.Product) ProductDTO {
	return ProductDTO{
		ID:                 product.ID,
		Title:              product.Title,
		Description:        product.Description,
		Category:           product.Category,
		Condition:          product.Condition.String(),
		Price:              product.Price,
		OriginalPrice:      product.OriginalPrice,
		DiscountPercentage: product.DiscountPercentage,
		Location:           product.Location,
		IsVerified:         product.IsVerified,
		IsNewWithTags:      product.IsNewWithTags,
		ImageURL:           product.ImageURL,
		SellerID:           product.SellerID,
		CreatedAt:          product.CreatedAt,
	}
}

// ToProductDTOs maps a slice of stored products onto the wire shape.
func ToProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		dtos = append(dtos, ToProductDTO(product))
	}
	return dtos
}

// ToCategoryDTO maps a stored category onto the wire shape.
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:       category.ID,
		Name:     category.Name,
		ImageURL: category.ImageURL,
	}
}
