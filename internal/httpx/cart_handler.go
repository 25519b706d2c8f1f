package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/autoshop/autoshop-api/internal/cart"
	"github.com/autoshop/autoshop-api/internal/money"
)

type CartHandler struct {
	Cart *cart.Service
	Log  *zap.Logger
}

func (h *CartHandler) Register(r chi.Router) {
	r.Get("/cart", h.list)
	r.Post("/cart", h.add)
	r.Delete("/cart/{id}", h.remove)
}

type cartLineJSON struct {
	ID        string      `json:"id"`
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
	Subtotal  json.Number `json:"subtotal"`
}

func toCartLineJSON(v cart.View) cartLineJSON {
	return cartLineJSON{
		ID:        v.Line.ID,
		ProductID: v.Line.ProductID,
		Name:      v.Name,
		Price:     money.Number(v.Price),
		Quantity:  v.Line.Quantity,
		Subtotal:  money.Number(v.Subtotal),
	}
}

func (h *CartHandler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.Cart.ListViews(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	out := make([]cartLineJSON, 0, len(views))
	for _, v := range views {
		out = append(out, toCartLineJSON(v))
	}
	writeJSON(w, http.StatusOK, out)
}

type addToCartReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid json"))
		return
	}
	line, product, err := h.Cart.Add(r.Context(), UserID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, cartLineJSON{
		ID:        line.ID,
		ProductID: line.ProductID,
		Name:      product.Name,
		Price:     money.Number(product.Price),
		Quantity:  line.Quantity,
		Subtotal:  money.Number(money.LineSubtotal(product.Price, line.Quantity)),
	})
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.Remove(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
