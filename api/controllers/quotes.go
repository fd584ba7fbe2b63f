package controllers

import (
	"net/http"
	"time"

	"github.com/railparts-supply/railparts-backend/api/responses"
	"github.com/railparts-supply/railparts-backend/api/validators"
	"github.com/railparts-supply/railparts-backend/internal/quotes"
	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
	"github.com/railparts-supply/railparts-backend/pkg/types"
)

type quoteProductPayload struct {
	Name        string `json:"name" validate:"required,max=200"`
	OEMSku      string `json:"oemSku" validate:"required,max=64"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	Description string `json:"description" validate:"max=500"`
}

type quoteServicesPayload struct {
	Repair             bool `json:"repair"`
	Consulting         bool `json:"consulting"`
	ReverseEngineering bool `json:"reverseEngineering"`
	Rebuild            bool `json:"rebuild"`
}

type submitQuoteRequest struct {
	FullName           string                `json:"fullName" validate:"required,max=200"`
	Company            string                `json:"company" validate:"max=200"`
	Email              string                `json:"email" validate:"required,email"`
	Phone              string                `json:"phone" validate:"required,max=40"`
	CountryCode        string                `json:"countryCode" validate:"max=8"`
	Country            string                `json:"country" validate:"max=100"`
	QuoteType          string                `json:"quoteType" validate:"required,oneof=products services"`
	Products           []quoteProductPayload `json:"products" validate:"dive"`
	Services           *quoteServicesPayload `json:"services"`
	ServiceDescription string                `json:"serviceDescription" validate:"max=2000"`
	AttachmentURLs     []string              `json:"attachmentUrls" validate:"max=10,dive,url"`
}

func (p submitQuoteRequest) toDomain() quotes.QuoteRequest {
	req := quotes.QuoteRequest{
		FullName:           validators.SanitizeString(p.FullName, 200),
		Company:            validators.SanitizeString(p.Company, 200),
		Email:              validators.SanitizeString(p.Email, 200),
		Phone:              validators.SanitizeString(p.Phone, 40),
		CountryCode:        validators.SanitizeString(p.CountryCode, 8),
		Country:            validators.SanitizeString(p.Country, 100),
		QuoteType:          quotes.QuoteType(p.QuoteType),
		ServiceDescription: validators.SanitizeString(p.ServiceDescription, 2000),
		AttachmentURLs:     p.AttachmentURLs,
	}
	for _, item := range p.Products {
		req.Products = append(req.Products, quotes.ProductItem{
			Name:        validators.SanitizeString(item.Name, 200),
			OEMSku:      validators.SanitizeString(item.OEMSku, 64),
			Quantity:    item.Quantity,
			Description: validators.SanitizeString(item.Description, 500),
		})
	}
	if p.Services != nil {
		req.Services = quotes.ServiceSelection{
			Repair:             p.Services.Repair,
			Consulting:         p.Services.Consulting,
			ReverseEngineering: p.Services.ReverseEngineering,
			Rebuild:            p.Services.Rebuild,
		}
	}
	return req
}

// QuoteSubmit runs the submission pipeline and reports the provider message id
// on success.
func QuoteSubmit(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload submitQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		meta := quotes.DeriveMeta(r, time.Now().UTC())
		result, err := svc.Submit(r.Context(), payload.toDomain(), meta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteEnvelope(w, http.StatusOK, types.SuccessEnvelope{
			Message:   "quote request sent successfully",
			MessageID: result.MessageID,
		})
	}
}
