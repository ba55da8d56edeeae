package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/adaezeumeh/thriftline-backend/api/middleware"
	"github.com/adaezeumeh/thriftline-backend/internal/catalog"
	"github.com/adaezeumeh/thriftline-backend/internal/storage/memory"
)

func newCatalogService(t *testing.T) catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(catalog.ServiceParams{Store: memory.New()})
	if err != nil {
		t.Fatalf("new catalog service: %v", err)
	}
	return svc
}

func seedListing(t *testing.T, svc catalog.Service, title, category, condition string, price float64) catalog.ProductDTO {
	t.Helper()
	dto, err := svc.CreateProduct(context.Background(), catalog.CreateProductInput{
		Title:     title,
		Category:  category,
		Condition: condition,
		Price:     price,
	})
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return dto
}

func TestListProductsAppliesQueryFilters(t *testing.T) {
	svc := newCatalogService(t)
	seedListing(t, svc, "Vintage Oak Chair", "Furniture", "Like New", 22500)
	seedListing(t, svc, "Bluetooth Speaker", "Electronics", "Good", 15800)

	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Furniture&search=vintage&minPrice=10000", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []catalog.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Title != "Vintage Oak Chair" {
		t.Fatalf("unexpected result set: %+v", envelope.Data)
	}
}

func TestListProductsRejectsBadPriceBound(t *testing.T) {
	handler := ListProducts(newCatalogService(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?minPrice=cheap", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/products/{productId}", GetProduct(newCatalogService(t), nil))

	req := httptest.NewRequest(http.MethodGet, "/api/products/42", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCreateProductRequiresUserContext(t *testing.T) {
	handler := CreateProduct(newCatalogService(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCreateProductSuccess(t *testing.T) {
	svc := newCatalogService(t)
	handler := CreateProduct(svc, nil)

	body := `{
		"title": "Retro Lamp",
		"description": "Warm glow, original shade",
		"category": "Furniture",
		"condition": "Good",
		"price": 8000,
		"originalPrice": 12000,
		"discountPercentage": 33,
		"location": "Abuja",
		"imageUrl": "https://img.example.com/lamp.jpg"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data catalog.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SellerID != 7 {
		t.Fatalf("expected seller id from context, got %d", envelope.Data.SellerID)
	}
}

func TestCreateProductValidationDetails(t *testing.T) {
	handler := CreateProduct(newCatalogService(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"title": "x"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "description") {
		t.Fatalf("expected field details in body: %s", resp.Body.String())
	}
}
