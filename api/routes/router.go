package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/railparts-supply/railparts-backend/api/controllers"
	"github.com/railparts-supply/railparts-backend/api/middleware"
	cartsvc "github.com/railparts-supply/railparts-backend/internal/cart"
	"github.com/railparts-supply/railparts-backend/internal/newsletter"
	"github.com/railparts-supply/railparts-backend/internal/quotes"
	"github.com/railparts-supply/railparts-backend/pkg/config"
	"github.com/railparts-supply/railparts-backend/pkg/db"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
	"github.com/railparts-supply/railparts-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	cartService cartsvc.Service,
	quoteService quotes.Service,
	newsletterService newsletter.Service,
	catalogService controllers.CatalogService,
	promGatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	quotePolicy := middleware.NewRateLimitPolicy(
		"quote",
		cfg.RateLimit.QuoteWindow,
		cfg.RateLimit.QuoteIPLimit,
	)
	newsletterPolicy := middleware.NewRateLimitPolicy(
		"newsletter",
		cfg.RateLimit.NewsletterWindow,
		cfg.RateLimit.NewsletterIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", controllers.CartFetch(cartService, logg))
		r.Delete("/", controllers.CartClear(cartService, logg))
		r.Post("/items", controllers.CartAddItem(cartService, logg))
		r.Patch("/items/{sku}", controllers.CartUpdateItem(cartService, logg))
		r.Delete("/items/{sku}", controllers.CartRemoveItem(cartService, logg))
	})

	r.Route("/api/v1/quotes", func(r chi.Router) {
		r.With(middleware.RateLimit(quotePolicy, redisClient, logg)).
			Post("/", controllers.QuoteSubmit(quoteService, logg))
	})

	r.Route("/api/v1/newsletter", func(r chi.Router) {
		r.With(middleware.RateLimit(newsletterPolicy, redisClient, logg)).
			Post("/", controllers.NewsletterSubscribe(newsletterService, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/suggestions", controllers.CatalogSuggestions(catalogService, logg))
		r.Get("/search", controllers.CatalogSearch(catalogService, logg))
		r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
	})

	return r
}
