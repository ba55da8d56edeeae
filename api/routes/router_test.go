package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adaezeumeh/thriftline-backend/internal/accounts"
	cartsvc "github.com/adaezeumeh/thriftline-backend/internal/cart"
	"github.com/adaezeumeh/thriftline-backend/internal/catalog"
	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	"github.com/adaezeumeh/thriftline-backend/internal/storage/memory"
	pkgAuth "github.com/adaezeumeh/thriftline-backend/pkg/auth"
	"github.com/adaezeumeh/thriftline-backend/pkg/config"
	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
	"github.com/adaezeumeh/thriftline-backend/pkg/metrics"
)

type allowAllSessions struct{}

func (allowAllSessions) HasSession(context.Context, string) (bool, error) { return true, nil }
func (allowAllSessions) Create(context.Context, string) error             { return nil }
func (allowAllSessions) Revoke(context.Context, string) error             { return nil }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, StorageDriver: config.StorageDriverMemory},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "thriftline",
			ExpirationMinutes: 15,
			SessionTTLMinutes: 60,
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, storage.Store) {
	t.Helper()
	cfg := testConfig()
	store := memory.New()

	catalogService, err := catalog.NewService(catalog.ServiceParams{Store: store})
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{Store: store})
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	accountsService, err := accounts.NewService(accounts.ServiceParams{
		Store:    store,
		Sessions: allowAllSessions{},
		JWT:      cfg.JWT,
		Password: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("accounts service: %v", err)
	}

	registry := prometheus.NewRegistry()

	handler := NewRouter(Deps{
		Config:   cfg,
		Logger:   nil,
		Sessions: allowAllSessions{},
		Metrics:  metrics.NewHTTPMetrics(registry),
		Registry: registry,
		Catalog:  catalogService,
		Cart:     cartService,
		Accounts: accountsService,
	})
	return handler, store
}

func mintToken(t *testing.T, role enums.UserRole, userID int64) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicRoutes(t *testing.T) {
	handler, _ := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready", "/metrics", "/api/products", "/api/categories", "/api/trending", "/api/recommendations"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	handler, _ := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/cart"},
		{http.MethodGet, "/api/user"},
		{http.MethodPost, "/api/logout"},
		{http.MethodPost, "/api/products"},
		{http.MethodPost, "/api/admin/products"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestAdminRoutesRejectShopperRole(t *testing.T) {
	handler, _ := newTestRouter(t)
	token := mintToken(t, enums.UserRoleUser, 1)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAdminCreateProduct(t *testing.T) {
	handler, _ := newTestRouter(t)
	token := mintToken(t, enums.UserRoleAdmin, 1)

	body := `{
		"title": "Vintage Oak Chair",
		"description": "Solid oak dining chair",
		"category": "Furniture",
		"condition": "Like New",
		"price": 22500,
		"originalPrice": 40000,
		"discountPercentage": 44,
		"location": "Lagos",
		"imageUrl": "https://img.example.com/chair.jpg"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCartFlowThroughRouter(t *testing.T) {
	handler, store := newTestRouter(t)
	token := mintToken(t, enums.UserRoleUser, 1)

	product, err := store.CreateProduct(context.Background(), storage.NewProduct{
		Title:     "Bluetooth Speaker",
		Category:  "Electronics",
		Condition: enums.ProductConditionGood,
		Price:     15800,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/cart",
		strings.NewReader(`{"productId": `+itoa(product.ID)+`, "quantity": 2}`))
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("add: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"total":31600`) {
		t.Fatalf("expected computed total in body: %s", resp.Body.String())
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
