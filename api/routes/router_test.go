package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/railparts-supply/railparts-backend/api/controllers"
	cartsvc "github.com/railparts-supply/railparts-backend/internal/cart"
	"github.com/railparts-supply/railparts-backend/internal/quotes"
	"github.com/railparts-supply/railparts-backend/pkg/config"
)

type stubCartService struct{}

func (stubCartService) Fetch(ctx context.Context, token string) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{Lines: []cartsvc.CartLine{}}, nil
}

func (stubCartService) Add(ctx context.Context, token string, product cartsvc.ProductInput) (cartsvc.AddOutcome, cartsvc.Snapshot, error) {
	return cartsvc.OutcomeAdded, cartsvc.Snapshot{}, nil
}

func (stubCartService) Increment(ctx context.Context, token, sku string) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}

func (stubCartService) Decrement(ctx context.Context, token, sku string) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}

func (stubCartService) UpdateQuantity(ctx context.Context, token, sku string, quantity int) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}

func (stubCartService) Remove(ctx context.Context, token, sku string) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}

func (stubCartService) Clear(ctx context.Context, token string) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}

type stubQuoteService struct{}

func (stubQuoteService) Submit(ctx context.Context, req quotes.QuoteRequest, meta quotes.RequestMeta) (quotes.Result, error) {
	return quotes.Result{MessageID: "msg-1"}, nil
}

type stubNewsletterService struct{}

func (stubNewsletterService) Subscribe(ctx context.Context, email string) error {
	return nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	var catalogService controllers.CatalogService
	return NewRouter(cfg, nil, nil, nil, stubCartService{}, stubQuoteService{}, stubNewsletterService{}, catalogService, nil)
}

func TestRouterHealthLive(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("X-RailParts-Env") != "test" {
		t.Fatal("expected env header")
	}
}

func TestRouterCartEndpointsWired(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var envelope struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
}

func TestRouterQuoteSubmitWired(t *testing.T) {
	router := testRouter(t)

	body := `{"fullName":"Anna Kovacs","email":"anna@example.com","phone":"5551234","quoteType":"products","products":[{"name":"Brake Shoe","oemSku":"BRK-220","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterUnknownRouteIs404(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
