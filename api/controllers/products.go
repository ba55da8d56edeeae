package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adaezeumeh/thriftline-backend/api/middleware"
	"github.com/adaezeumeh/thriftline-backend/api/responses"
	"github.com/adaezeumeh/thriftline-backend/api/validators"
	"github.com/adaezeumeh/thriftline-backend/internal/catalog"
	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
	"github.com/adaezeumeh/thriftline-backend/pkg/logger"
)

// ListProducts serves the public catalog with optional filter predicates.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := filtersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

func filtersFromQuery(r *http.Request) (storage.ProductFilters, error) {
	minPrice, err := validators.ParseQueryFloat(r, "minPrice")
	if err != nil {
		return storage.ProductFilters{}, err
	}
	maxPrice, err := validators.ParseQueryFloat(r, "maxPrice")
	if err != nil {
		return storage.ProductFilters{}, err
	}

	query := r.URL.Query()
	return storage.ProductFilters{
		Category:  query.Get("category"),
		Search:    query.Get("search"),
		Condition: query.Get("condition"),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
	}, nil
}

// GetProduct serves a single listing by id.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	Title              string  `json:"title" validate:"required"`
	Description        string  `json:"description" validate:"required"`
	Category           string  `json:"category" validate:"required"`
	Condition          string  `json:"condition" validate:"required"`
	Price              float64 `json:"price" validate:"required,gte=0"`
	OriginalPrice      float64 `json:"originalPrice" validate:"required,gte=0"`
	DiscountPercentage int     `json:"discountPercentage" validate:"gte=0,lte=100"`
	Location           string  `json:"location" validate:"required"`
	IsVerified         bool    `json:"isVerified"`
	IsNewWithTags      bool    `json:"isNewWithTags"`
	ImageURL           string  `json:"imageUrl" validate:"required,url"`
}

func (r createProductRequest) toCreateInput(sellerID int64) catalog.CreateProductInput {
	return catalog.CreateProductInput{
		Title:              r.Title,
		Description:        r.Description,
		Category:           r.Category,
		Condition:          r.Condition,
		Price:              r.Price,
		OriginalPrice:      r.OriginalPrice,
		DiscountPercentage: r.DiscountPercentage,
		Location:           r.Location,
		IsVerified:         r.IsVerified,
		IsNewWithTags:      r.IsNewWithTags,
		ImageURL:           r.ImageURL,
		SellerID:           sellerID,
	}
}

// CreateProduct lets any signed-in user list an item for sale.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toCreateInput(userID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ListCategories serves the catalog's section list.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}
