package controllers

import (
	"net/http"

	"github.com/railparts-supply/railparts-backend/api/responses"
	"github.com/railparts-supply/railparts-backend/api/validators"
	"github.com/railparts-supply/railparts-backend/internal/newsletter"
	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
	"github.com/railparts-supply/railparts-backend/pkg/types"
)

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewsletterSubscribe stores a subscriber; an address that already exists is a
// conflict so the storefront can show "already subscribed".
func NewsletterSubscribe(svc newsletter.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "newsletter service unavailable"))
			return
		}

		var payload subscribeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Subscribe(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteEnvelope(w, http.StatusOK, types.SuccessEnvelope{Message: "subscribed to newsletter"})
	}
}
