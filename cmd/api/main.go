package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/railparts-supply/railparts-backend/api/controllers"
	"github.com/railparts-supply/railparts-backend/api/routes"
	"github.com/railparts-supply/railparts-backend/internal/audit"
	cartsvc "github.com/railparts-supply/railparts-backend/internal/cart"
	"github.com/railparts-supply/railparts-backend/internal/catalog"
	"github.com/railparts-supply/railparts-backend/internal/newsletter"
	"github.com/railparts-supply/railparts-backend/internal/quotes"
	"github.com/railparts-supply/railparts-backend/pkg/config"
	"github.com/railparts-supply/railparts-backend/pkg/db"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
	"github.com/railparts-supply/railparts-backend/pkg/mailer"
	"github.com/railparts-supply/railparts-backend/pkg/metrics"
	"github.com/railparts-supply/railparts-backend/pkg/migrate"
	"github.com/railparts-supply/railparts-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Repo: cartsvc.NewRepository(redisClient, cfg.Cart.TTL),
		Images: cartsvc.ImageResolver{
			BaseURL:      cfg.Cart.ImageBaseURL,
			FallbackPath: cfg.Cart.FallbackImagePath,
		},
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	dispatcher := mailer.New(context.Background(), cfg.Sendgrid, logg)
	quoteService, err := quotes.NewService(quotes.ServiceParams{
		Audit:      audit.NewRepository(dbClient.DB()),
		Dispatcher: dispatcher,
		Quote:      cfg.Quote,
		Metrics:    quoteMetrics,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	newsletterService, err := newsletter.NewService(newsletter.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	catalogClient, err := catalog.NewClient(cfg.Catalog)
	if err != nil {
		logg.Warn(logg.WithField(context.Background(), "reason", err.Error()), "catalog client disabled")
		catalogClient = nil
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			cartService,
			quoteService,
			newsletterService,
			catalogService(catalogClient),
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// catalogService avoids handing the router a typed-nil interface when the
// catalog client is not configured.
func catalogService(client *catalog.Client) controllers.CatalogService {
	if client == nil {
		return nil
	}
	return client
}
