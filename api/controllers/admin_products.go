package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adaezeumeh/thriftline-backend/api/middleware"
	"github.com/adaezeumeh/thriftline-backend/api/responses"
	"github.com/adaezeumeh/thriftline-backend/api/validators"
	"github.com/adaezeumeh/thriftline-backend/internal/catalog"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
	"github.com/adaezeumeh/thriftline-backend/pkg/logger"
)

// AdminCreateProduct creates a listing on behalf of the storefront.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

type updateProductRequest struct {
	Title              *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Description        *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	Category           *string  `json:"category,omitempty" validate:"omitempty,min=1"`
	Condition          *string  `json:"condition,omitempty" validate:"omitempty,min=1"`
	Price              *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	OriginalPrice      *float64 `json:"originalPrice,omitempty" validate:"omitempty,gte=0"`
	DiscountPercentage *int     `json:"discountPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Location           *string  `json:"location,omitempty" validate:"omitempty,min=1"`
	IsVerified         *bool    `json:"isVerified,omitempty"`
	IsNewWithTags      *bool    `json:"isNewWithTags,omitempty"`
	ImageURL           *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// AdminUpdateProduct applies a partial patch to a listing.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, catalog.UpdateProductInput{
			Title:              payload.Title,
			Description:        payload.Description,
			Category:           payload.Category,
			Condition:          payload.Condition,
			Price:              payload.Price,
			OriginalPrice:      payload.OriginalPrice,
			DiscountPercentage: payload.DiscountPercentage,
			Location:           payload.Location,
			IsVerified:         payload.IsVerified,
			IsNewWithTags:      payload.IsNewWithTags,
			ImageURL:           payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a listing and its cart references.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

type createCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=80"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// AdminCreateCategory registers a new catalog section.
func AdminCreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalog.CreateCategoryInput{
			Name:     payload.Name,
			ImageURL: payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}
