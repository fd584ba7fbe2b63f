package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
)

type stubNewsletterService struct {
	subscribeFn func(ctx context.Context, email string) error
}

func (s stubNewsletterService) Subscribe(ctx context.Context, email string) error {
	if s.subscribeFn != nil {
		return s.subscribeFn(ctx, email)
	}
	return nil
}

func TestNewsletterSubscribeSuccess(t *testing.T) {
	var gotEmail string
	handler := NewsletterSubscribe(stubNewsletterService{
		subscribeFn: func(ctx context.Context, email string) error {
			gotEmail = email
			return nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter", strings.NewReader(`{"email":"anna@example.com"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotEmail != "anna@example.com" {
		t.Fatalf("unexpected email: %q", gotEmail)
	}
}

func TestNewsletterSubscribeDuplicateReturns409(t *testing.T) {
	handler := NewsletterSubscribe(stubNewsletterService{
		subscribeFn: func(ctx context.Context, email string) error {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already subscribed")
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter", strings.NewReader(`{"email":"anna@example.com"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestNewsletterSubscribeRejectsInvalidEmail(t *testing.T) {
	handler := NewsletterSubscribe(stubNewsletterService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter", strings.NewReader(`{"email":"nope"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
