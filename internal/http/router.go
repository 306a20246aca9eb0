package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mainak-2006/rn-zomato/internal/identity"
	"github.com/Mainak-2006/rn-zomato/internal/metrics"
)

type RouterConfig struct {
	Catalog          *CatalogHandler
	Me               *MeHandler
	Verifier         *identity.Verifier
	CORSAllowOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(CorrelationID)
	r.Use(CORS(cfg.CORSAllowOrigins))
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/categories", cfg.Catalog.Categories)
		r.Get("/restaurants", cfg.Catalog.Restaurants)
		r.Get("/restaurants/{name}/foods", cfg.Catalog.RestaurantMenu)
		r.Get("/foods", cfg.Catalog.Foods)
		r.Get("/foods/{foodId}", cfg.Catalog.Food)
		r.Get("/search", cfg.Catalog.Search)
	})

	r.Route("/api/me", func(r chi.Router) {
		r.Use(identity.Middleware(cfg.Verifier))

		r.Get("/", cfg.Me.Profile)

		r.Get("/cart", cfg.Me.GetCart)
		r.Post("/cart/items", cfg.Me.AddItem)
		r.Put("/cart/items/{itemId}", cfg.Me.UpdateItem)
		r.Delete("/cart/items/{itemId}", cfg.Me.RemoveItem)

		r.Get("/orders", cfg.Me.ListOrders)
		r.Post("/orders", cfg.Me.PlaceOrder)
		r.Get("/orders/pending", cfg.Me.PendingOrders)
		r.Get("/orders/paid-summary", cfg.Me.PaidSummary)
		r.Post("/orders/pay-latest", cfg.Me.PayLatest)
		r.Post("/orders/pay-all", cfg.Me.PayAll)
		r.Post("/checkout", cfg.Me.Checkout)
	})

	return r
}
