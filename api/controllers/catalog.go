package controllers

import (
	"context"
	"net/http"

	"github.com/railparts-supply/railparts-backend/api/responses"
	"github.com/railparts-supply/railparts-backend/api/validators"
	"github.com/railparts-supply/railparts-backend/internal/catalog"
	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
)

// CatalogService is the read-only catalog surface the controllers consume.
type CatalogService interface {
	Suggestions(ctx context.Context, query string, limit int) ([]catalog.Suggestion, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]catalog.Product, error)
	Categories(ctx context.Context) ([]catalog.Category, error)
}

// CatalogSuggestions proxies search-as-you-type suggestions.
func CatalogSuggestions(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), 100)
		if query == "" {
			responses.WriteSuccess(w, []catalog.Suggestion{})
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 8, 1, 25)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		suggestions, err := svc.Suggestions(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if suggestions == nil {
			suggestions = []catalog.Suggestion{}
		}
		responses.WriteSuccess(w, suggestions)
	}
}

// CatalogSearch proxies full product search.
func CatalogSearch(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), 100)
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "pageSize", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.Search(r.Context(), query, page, pageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}
		responses.WriteSuccess(w, products)
	}
}

// CatalogCategories proxies the category tree.
func CatalogCategories(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if categories == nil {
			categories = []catalog.Category{}
		}
		responses.WriteSuccess(w, categories)
	}
}
