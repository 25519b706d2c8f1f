package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/autoshop/autoshop-api/internal/catalog"
	"github.com/autoshop/autoshop-api/internal/reviews"
)

type ReviewsHandler struct {
	Reviews *reviews.Repo
	Catalog *catalog.Repo
	Log     *zap.Logger
}

func (h *ReviewsHandler) Register(r chi.Router) {
	r.Get("/reviews/products/{product_id}", h.listForProduct)
}

func (h *ReviewsHandler) RegisterProtected(r chi.Router) {
	r.Post("/reviews/products/{product_id}", h.add)
	r.Put("/reviews/{id}", h.edit)
	r.Delete("/reviews/{id}", h.delete)
}

type reviewReq struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type reviewJSON struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewJSON(rv *reviews.Review) reviewJSON {
	return reviewJSON{
		ID: rv.ID, UserID: rv.UserID, ProductID: rv.ProductID,
		Rating: rv.Rating, Text: rv.Text, CreatedAt: rv.CreatedAt,
	}
}

func (h *ReviewsHandler) add(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	var req reviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid json"))
		return
	}
	if err := reviews.Validate(req.Rating, req.Text); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if _, err := h.Catalog.Get(r.Context(), productID); err != nil {
		writeError(w, h.Log, err)
		return
	}
	rv := &reviews.Review{
		ID:        uuid.NewString(),
		UserID:    UserID(r.Context()),
		ProductID: productID,
		Rating:    req.Rating,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Reviews.Insert(r.Context(), rv); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewJSON(rv))
}

func (h *ReviewsHandler) listForProduct(w http.ResponseWriter, r *http.Request) {
	rvs, err := h.Reviews.ListForProduct(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	out := make([]reviewJSON, 0, len(rvs))
	for i := range rvs {
		out = append(out, toReviewJSON(&rvs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReviewsHandler) edit(w http.ResponseWriter, r *http.Request) {
	var req reviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid json"))
		return
	}
	if err := reviews.Validate(req.Rating, req.Text); err != nil {
		writeError(w, h.Log, err)
		return
	}
	rv, err := h.Reviews.Update(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), req.Rating, req.Text)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewJSON(rv))
}

func (h *ReviewsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
