package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/railparts-supply/railparts-backend/api/responses"
	"github.com/railparts-supply/railparts-backend/api/validators"
	cartsvc "github.com/railparts-supply/railparts-backend/internal/cart"
	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
	"github.com/railparts-supply/railparts-backend/pkg/types"
)

// CartTokenHeader carries the anonymous cart identifier. The server mints one
// on first contact and echoes it on every response so the storefront can
// persist it client-side.
const CartTokenHeader = "X-RP-Cart-Token"

func cartToken(w http.ResponseWriter, r *http.Request) string {
	token := validators.SanitizeString(r.Header.Get(CartTokenHeader), 128)
	if token == "" {
		token = uuid.NewString()
	}
	w.Header().Set(CartTokenHeader, token)
	return token
}

// CartFetch returns the current cart snapshot for the caller's token.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token := cartToken(w, r)
		snapshot, err := svc.Fetch(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

type addCartItemRequest struct {
	SKU         string `json:"sku" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=200"`
	ImageID     string `json:"imageId" validate:"max=128"`
	Description string `json:"description" validate:"max=500"`
}

// CartAddItem adds a product to the cart, incrementing the quantity when the
// SKU is already present. The response message tells the storefront which of
// the two happened.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := cartToken(w, r)
		outcome, snapshot, err := svc.Add(r.Context(), token, cartsvc.ProductInput{
			SKU:         validators.SanitizeString(payload.SKU, 64),
			Name:        validators.SanitizeString(payload.Name, 200),
			ImageID:     validators.SanitizeString(payload.ImageID, 128),
			Description: validators.SanitizeString(payload.Description, 500),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := "added to quote"
		if outcome == cartsvc.OutcomeIncreased {
			message = "quantity increased"
		}
		responses.WriteEnvelope(w, http.StatusOK, types.SuccessEnvelope{Message: message, Data: snapshot})
	}
}

type updateCartItemRequest struct {
	Action   string `json:"action" validate:"required,oneof=increment decrement set"`
	Quantity *int   `json:"quantity" validate:"omitempty,min=0"`
}

// CartUpdateItem applies a quantity mutation to one line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sku := chi.URLParam(r, "sku")
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product sku required"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := cartToken(w, r)
		ctx := r.Context()

		var (
			snapshot cartsvc.Snapshot
			err      error
		)
		switch payload.Action {
		case "increment":
			snapshot, err = svc.Increment(ctx, token, sku)
		case "decrement":
			snapshot, err = svc.Decrement(ctx, token, sku)
		case "set":
			if payload.Quantity == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity required for set"))
				return
			}
			snapshot, err = svc.UpdateQuantity(ctx, token, sku, *payload.Quantity)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// CartRemoveItem removes a line regardless of its quantity.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sku := chi.URLParam(r, "sku")
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product sku required"))
			return
		}

		token := cartToken(w, r)
		snapshot, err := svc.Remove(r.Context(), token, sku)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// CartClear empties the cart after a submitted quote or an explicit reset.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token := cartToken(w, r)
		snapshot, err := svc.Clear(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteEnvelope(w, http.StatusOK, types.SuccessEnvelope{Message: "quote cart cleared", Data: snapshot})
	}
}
