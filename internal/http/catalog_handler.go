package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Mainak-2006/rn-zomato/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Service
	timeout time.Duration
	logger  *log.Logger
}

func NewCatalogHandler(svc *catalog.Service, timeout time.Duration, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: svc, timeout: timeout, logger: logger}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		h.fail(w, "load categories", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(categories))
}

func (h *CatalogHandler) Restaurants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	restaurants, err := h.catalog.Restaurants(ctx)
	if err != nil {
		h.fail(w, "load restaurants", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(restaurants))
}

func (h *CatalogHandler) RestaurantMenu(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing restaurant name")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	menu, err := h.catalog.RestaurantMenu(ctx, name, r.URL.Query().Get("section"))
	if err != nil {
		h.fail(w, "load menu", err)
		return
	}
	menu.Foods = nonNil(menu.Foods)
	writeJSON(w, http.StatusOK, menu)
}

func (h *CatalogHandler) Foods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categoryID, categoryName := q.Get("categoryId"), q.Get("categoryName")
	if categoryID == "" && categoryName == "" {
		writeError(w, http.StatusBadRequest, "categoryId or categoryName is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	foods, err := h.catalog.FoodsInCategory(ctx, categoryID, categoryName)
	if err != nil {
		h.fail(w, "load foods", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(foods))
}

func (h *CatalogHandler) Food(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	food, err := h.catalog.Food(ctx, pathParam(r, "foodId"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "food not found")
			return
		}
		h.fail(w, "load food", err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	results, err := h.catalog.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(results))
}

func (h *CatalogHandler) fail(w http.ResponseWriter, what string, err error) {
	h.logger.Printf("catalog: %s: %v", what, err)
	writeError(w, http.StatusInternalServerError, "failed to "+what)
}

// pathParam returns a decoded chi URL parameter. chi matches on the raw path
// when the client encoded it unusually, which leaves escapes in place.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// nonNil keeps empty lists encoding as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
