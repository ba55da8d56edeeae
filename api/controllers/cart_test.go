package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/adaezeumeh/thriftline-backend/api/middleware"
	cartsvc "github.com/adaezeumeh/thriftline-backend/internal/cart"
	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	"github.com/adaezeumeh/thriftline-backend/internal/storage/memory"
	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
)

func newCartFixture(t *testing.T) (cartsvc.Service, int64) {
	t.Helper()
	store := memory.New()
	product, err := store.CreateProduct(context.Background(), storage.NewProduct{
		Title:     "Vintage Oak Chair",
		Category:  "Furniture",
		Condition: enums.ProductConditionLikeNew,
		Price:     22500,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	svc, err := cartsvc.NewService(cartsvc.ServiceParams{Store: store})
	if err != nil {
		t.Fatalf("new cart service: %v", err)
	}
	return svc, product.ID
}

func TestCartFetchRequiresUserContext(t *testing.T) {
	svc, _ := newCartFixture(t)
	handler := CartFetch(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartAddAndFetch(t *testing.T) {
	svc, productID := newCartFixture(t)

	addReq := httptest.NewRequest(http.MethodPost, "/api/cart",
		strings.NewReader(`{"productId": `+strconv.FormatInt(productID, 10)+`, "quantity": 2}`))
	addReq = addReq.WithContext(middleware.WithUserID(addReq.Context(), 1))
	addResp := httptest.NewRecorder()
	CartAdd(svc, nil).ServeHTTP(addResp, addReq)

	if addResp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", addResp.Code, addResp.Body.String())
	}

	fetchReq := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	fetchReq = fetchReq.WithContext(middleware.WithUserID(fetchReq.Context(), 1))
	fetchResp := httptest.NewRecorder()
	CartFetch(svc, nil).ServeHTTP(fetchResp, fetchReq)

	if fetchResp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", fetchResp.Code)
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(fetchResp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", envelope.Data)
	}
	if envelope.Data.Total != 45000 {
		t.Fatalf("expected total 45000 got %v", envelope.Data.Total)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc, _ := newCartFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"productId": 999, "quantity": 1}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	resp := httptest.NewRecorder()
	CartAdd(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartUpdateForeignRowReadsAsMissing(t *testing.T) {
	svc, productID := newCartFixture(t)

	line, err := svc.AddItem(context.Background(), 1, productID, 1)
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	r := chi.NewRouter()
	r.Put("/api/cart/{itemId}", CartUpdate(svc, nil))

	req := httptest.NewRequest(http.MethodPut, "/api/cart/"+strconv.FormatInt(line.ID, 10),
		strings.NewReader(`{"quantity": 9}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), 2))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartUpdateRejectsNonPositiveQuantity(t *testing.T) {
	svc, productID := newCartFixture(t)

	line, err := svc.AddItem(context.Background(), 1, productID, 1)
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	r := chi.NewRouter()
	r.Put("/api/cart/{itemId}", CartUpdate(svc, nil))

	req := httptest.NewRequest(http.MethodPut, "/api/cart/"+strconv.FormatInt(line.ID, 10),
		strings.NewReader(`{"quantity": 0}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartRemoveReturnsNoContent(t *testing.T) {
	svc, productID := newCartFixture(t)

	line, err := svc.AddItem(context.Background(), 1, productID, 1)
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	r := chi.NewRouter()
	r.Delete("/api/cart/{itemId}", CartRemove(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/"+strconv.FormatInt(line.ID, 10), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}

	// A second delete of the same row is still 204.
	req = httptest.NewRequest(http.MethodDelete, "/api/cart/"+strconv.FormatInt(line.ID, 10), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
}
