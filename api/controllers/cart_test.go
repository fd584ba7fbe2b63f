package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	cartsvc "github.com/railparts-supply/railparts-backend/internal/cart"
)

type stubCartService struct {
	fetchFn  func(ctx context.Context, token string) (cartsvc.Snapshot, error)
	addFn    func(ctx context.Context, token string, product cartsvc.ProductInput) (cartsvc.AddOutcome, cartsvc.Snapshot, error)
	updateFn func(ctx context.Context, token, sku string, quantity int) (cartsvc.Snapshot, error)
	removeFn func(ctx context.Context, token, sku string) (cartsvc.Snapshot, error)
	clearFn  func(ctx context.Context, token string) (cartsvc.Snapshot, error)
}

func (s stubCartService) Fetch(ctx context.Context, token string) (cartsvc.Snapshot, error) {
	if s.fetchFn != nil {
		return s.fetchFn(ctx, token)
	}
	return cartsvc.Snapshot{}, nil
}

func (s stubCartService) Add(ctx context.Context, token string, product cartsvc.ProductInput) (cartsvc.AddOutcome, cartsvc.Snapshot, error) {
	if s.addFn != nil {
		return s.addFn(ctx, token, product)
	}
	return cartsvc.OutcomeAdded, cartsvc.Snapshot{}, nil
}

func (s stubCartService) Increment(ctx context.Context, token, sku string) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}

func (s stubCartService) Decrement(ctx context.Context, token, sku string) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}

func (s stubCartService) UpdateQuantity(ctx context.Context, token, sku string, quantity int) (cartsvc.Snapshot, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, token, sku, quantity)
	}
	return cartsvc.Snapshot{}, nil
}

func (s stubCartService) Remove(ctx context.Context, token, sku string) (cartsvc.Snapshot, error) {
	if s.removeFn != nil {
		return s.removeFn(ctx, token, sku)
	}
	return cartsvc.Snapshot{}, nil
}

func (s stubCartService) Clear(ctx context.Context, token string) (cartsvc.Snapshot, error) {
	if s.clearFn != nil {
		return s.clearFn(ctx, token)
	}
	return cartsvc.Snapshot{}, nil
}

func TestCartFetchMintsTokenWhenMissing(t *testing.T) {
	var seenToken string
	handler := CartFetch(stubCartService{
		fetchFn: func(ctx context.Context, token string) (cartsvc.Snapshot, error) {
			seenToken = token
			return cartsvc.Snapshot{ItemCount: 0}, nil
		},
	}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	echoed := resp.Header().Get(CartTokenHeader)
	if echoed == "" || echoed != seenToken {
		t.Fatalf("expected minted token echoed to client, header %q service %q", echoed, seenToken)
	}
}

func TestCartFetchReusesProvidedToken(t *testing.T) {
	var seenToken string
	handler := CartFetch(stubCartService{
		fetchFn: func(ctx context.Context, token string) (cartsvc.Snapshot, error) {
			seenToken = token
			return cartsvc.Snapshot{}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(CartTokenHeader, "cart-abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seenToken != "cart-abc" {
		t.Fatalf("expected provided token, got %q", seenToken)
	}
	if resp.Header().Get(CartTokenHeader) != "cart-abc" {
		t.Fatal("token must be echoed back")
	}
}

func TestCartAddItemReportsOutcomeMessage(t *testing.T) {
	cases := []struct {
		outcome cartsvc.AddOutcome
		message string
	}{
		{cartsvc.OutcomeAdded, "added to quote"},
		{cartsvc.OutcomeIncreased, "quantity increased"},
	}

	for _, tc := range cases {
		handler := CartAddItem(stubCartService{
			addFn: func(ctx context.Context, token string, product cartsvc.ProductInput) (cartsvc.AddOutcome, cartsvc.Snapshot, error) {
				return tc.outcome, cartsvc.Snapshot{ItemCount: 1, TotalQuantity: 2, Expanded: true}, nil
			},
		}, nil)

		body := `{"sku":"LWA-001","name":"Traction Motor Armature"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("outcome %s: expected 200, got %d", tc.outcome, resp.Code)
		}
		var envelope struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !envelope.Success || envelope.Message != tc.message {
			t.Fatalf("outcome %s: unexpected envelope %+v", tc.outcome, envelope)
		}
	}
}

func TestCartAddItemRejectsMissingSKU(t *testing.T) {
	handler := CartAddItem(stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"name":"Brake Shoe"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCartUpdateItemSetQuantityZeroRemovesLine(t *testing.T) {
	var gotSKU string
	var gotQty int
	handler := CartUpdateItem(stubCartService{
		updateFn: func(ctx context.Context, token, sku string, quantity int) (cartsvc.Snapshot, error) {
			gotSKU, gotQty = sku, quantity
			return cartsvc.Snapshot{}, nil
		},
	}, nil)

	r := chi.NewRouter()
	r.Patch("/api/v1/cart/items/{sku}", handler)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/LWA-001", strings.NewReader(`{"action":"set","quantity":0}`))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotSKU != "LWA-001" || gotQty != 0 {
		t.Fatalf("expected set(LWA-001, 0), got (%s, %d)", gotSKU, gotQty)
	}
}

func TestCartUpdateItemRejectsUnknownAction(t *testing.T) {
	r := chi.NewRouter()
	r.Patch("/api/v1/cart/items/{sku}", CartUpdateItem(stubCartService{}, nil))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/LWA-001", strings.NewReader(`{"action":"double"}`))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCartClear(t *testing.T) {
	handler := CartClear(stubCartService{
		clearFn: func(ctx context.Context, token string) (cartsvc.Snapshot, error) {
			return cartsvc.Snapshot{}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req.Header.Set(CartTokenHeader, "cart-abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
