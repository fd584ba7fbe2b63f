package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",             // local dev
	"https://railparts-supply.com",      // production storefront
	"https://www.railparts-supply.com",  // production storefront
	"https://railparts-staging.web.app", // staging preview
}

// CORS returns middleware that applies the storefront's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-RP-Cart-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"X-RP-Cart-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
