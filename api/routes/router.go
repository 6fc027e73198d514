package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beautytrade/inventory-backend/api/controllers"
	"github.com/beautytrade/inventory-backend/api/middleware"
	accountsvc "github.com/beautytrade/inventory-backend/internal/accounts"
	authsvc "github.com/beautytrade/inventory-backend/internal/auth"
	catalogsvc "github.com/beautytrade/inventory-backend/internal/catalog"
	customersvc "github.com/beautytrade/inventory-backend/internal/customers"
	inventorysvc "github.com/beautytrade/inventory-backend/internal/inventory"
	pricingsvc "github.com/beautytrade/inventory-backend/internal/pricing"
	reportsvc "github.com/beautytrade/inventory-backend/internal/reports"
	"github.com/beautytrade/inventory-backend/pkg/config"
	"github.com/beautytrade/inventory-backend/pkg/db"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/beautytrade/inventory-backend/pkg/logger"
	"github.com/beautytrade/inventory-backend/pkg/metrics"
	"github.com/beautytrade/inventory-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	authService authsvc.Service,
	accountService accountsvc.Service,
	catalogService catalogsvc.Service,
	customerService customersvc.Service,
	pricingService pricingsvc.Service,
	inventoryService inventorysvc.Service,
	reportService reportsvc.Service,
) http.Handler {
	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(httpMetrics),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	hasRedis := redisClient != nil

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		if hasRedis {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, nil))
		}
	})

	r.Get("/api/public/ping", controllers.PublicPing())

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/auth", func(r chi.Router) {
		login := controllers.AuthLogin(authService, logg)
		if hasRedis {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", login)
		} else {
			r.Post("/login", login)
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		if hasRedis {
			r.Use(middleware.Idempotency(redisClient, logg))
			r.Use(middleware.RateLimit(redisClient, logg))
		}

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/me", controllers.AccountMe(accountService, logg))
		r.Get("/dashboard", controllers.Dashboard(reportService, logg))

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.BrandList(catalogService, logg))
			r.Post("/", controllers.BrandCreate(catalogService, logg))
			r.Get("/{brandId}", controllers.BrandGet(catalogService, logg))
			r.Patch("/{brandId}", controllers.BrandUpdate(catalogService, logg))
			r.Post("/{brandId}/archive", controllers.BrandArchive(catalogService, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ItemList(catalogService, logg))
			r.Post("/", controllers.ItemCreate(catalogService, logg))
			r.Get("/next-sku", controllers.ItemNextSKU(catalogService, logg))
			r.Get("/{itemId}", controllers.ItemGet(catalogService, logg))
			r.Patch("/{itemId}", controllers.ItemUpdate(catalogService, logg))
			r.With(middleware.RequireAdmin(logg)).Delete("/{itemId}", controllers.ItemDelete(catalogService, logg))

			r.Get("/{itemId}/batches", controllers.ItemBatches(inventoryService, logg))
			r.Get("/{itemId}/next-batch-number", controllers.ItemNextBatchNumber(inventoryService, logg))
			r.Post("/{itemId}/adjust", controllers.ItemAdjust(inventoryService, logg))
			r.Post("/{itemId}/batches/{batchNumber}/adjust", controllers.BatchAdjust(inventoryService, logg))

			r.Route("/{itemId}/tier-prices", func(r chi.Router) {
				r.Get("/", controllers.TierPriceList(pricingService, logg))
				r.Put("/", controllers.TierPriceSet(pricingService, logg))
				r.Delete("/{tier}", controllers.TierPriceRemove(pricingService, logg))
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(customerService, logg))
			r.Post("/", controllers.CustomerCreate(customerService, logg))
			r.Get("/{customerId}", controllers.CustomerGet(customerService, logg))
			r.Patch("/{customerId}", controllers.CustomerUpdate(customerService, logg))
			r.Post("/{customerId}/archive", controllers.CustomerArchive(customerService, logg))

			r.Get("/{customerId}/brands", controllers.AssignmentList(pricingService, logg))
			r.With(middleware.RequireAdmin(logg)).Post("/{customerId}/brands/backfill", controllers.AssignmentBackfill(pricingService, logg))
			r.Put("/{customerId}/brands/{brandId}/tier", controllers.AssignmentPut(pricingService, logg))
			r.Delete("/{customerId}/brands/{brandId}/tier", controllers.AssignmentDelete(pricingService, logg))
		})

		r.Route("/pricing", func(r chi.Router) {
			r.Get("/tiers", controllers.PricingTierCatalog())
			r.Get("/quote", controllers.PriceQuote(pricingService, logg))
		})

		r.Route("/special-pricing", func(r chi.Router) {
			r.Get("/", controllers.SpecialList(pricingService, logg))
			r.Post("/", controllers.SpecialCreate(pricingService, logg))
			r.With(middleware.RequireAdmin(logg)).Delete("/{requestId}", controllers.SpecialDelete(pricingService, logg))

			decisionRoles := middleware.RequireAnyRole(logg, enums.AccountRoleAdmin, enums.AccountRoleLeader)
			r.With(decisionRoles).Post("/{requestId}/approve", controllers.SpecialApprove(pricingService, logg))
			r.With(decisionRoles).Post("/{requestId}/reject", controllers.SpecialReject(pricingService, logg))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.TransactionList(inventoryService, logg))
			r.Get("/next-reference", controllers.TransactionNextReference(inventoryService, logg))
			r.Post("/incoming", controllers.TransactionIncoming(inventoryService, logg))
			r.Post("/outgoing", controllers.TransactionOutgoing(inventoryService, logg))
			r.Get("/{transactionId}", controllers.TransactionGet(inventoryService, logg))
			r.Patch("/{transactionId}/flags", controllers.TransactionFlags(inventoryService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/exports/items", controllers.ExportItems(reportService, logg))
			r.Get("/exports/customers", controllers.ExportCustomers(reportService, logg))
			r.Get("/exports/transactions", controllers.ExportTransactions(reportService, logg))
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/", controllers.AccountList(accountService, logg))
			r.Post("/", controllers.AccountCreate(accountService, logg))
			r.Get("/{accountId}", controllers.AccountGet(accountService, logg))
			r.Patch("/{accountId}", controllers.AccountUpdate(accountService, logg))
			r.Post("/{accountId}/password", controllers.AccountChangePassword(accountService, logg))
			r.Post("/{accountId}/deactivate", controllers.AccountDeactivate(accountService, logg))
		})
	})

	return r
}
