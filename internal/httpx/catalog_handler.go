package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/autoshop/autoshop-api/internal/catalog"
	"github.com/autoshop/autoshop-api/internal/money"
	"github.com/autoshop/autoshop-api/internal/redisx"
)

type CatalogHandler struct {
	Catalog *catalog.Repo
	Redis   *redis.Client
	Log     *zap.Logger
}

func (h *CatalogHandler) Register(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/categories", h.listCategories)
}

type productJSON struct {
	ID          string      `json:"id"`
	SKU         string      `json:"sku"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	CategoryID  *string     `json:"category_id"`
	CreatedAt   time.Time   `json:"created_at"`
}

func toProductJSON(p *catalog.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       money.Number(p.Price),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	f := catalog.Filter{
		Page:       page,
		Size:       size,
		CategoryID: q.Get("category_id"),
		Query:      q.Get("q"),
	}
	ps, err := h.Catalog.List(r.Context(), f)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	out := make([]productJSON, 0, len(ps))
	for i := range ps {
		out = append(out, toProductJSON(&ps[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// cache first, DB as the source of truth
	key := fmt.Sprintf(redisx.KeyProduct, id)
	if s, err := h.Redis.Get(r.Context(), key).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	p, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	b, _ := json.Marshal(toProductJSON(p))
	_ = h.Redis.Set(r.Context(), key, b, redisx.TTLProductCache).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type categoryJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	out := make([]categoryJSON, 0, len(cs))
	for _, c := range cs {
		out = append(out, categoryJSON{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	writeJSON(w, http.StatusOK, out)
}
