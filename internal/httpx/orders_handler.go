package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/autoshop/autoshop-api/internal/kafka"
	"github.com/autoshop/autoshop-api/internal/money"
	"github.com/autoshop/autoshop-api/internal/orders"
	"github.com/autoshop/autoshop-api/internal/redisx"
)

type OrdersHandler struct {
	Orders   *orders.Service
	Producer *kafkax.Producer
	Redis    *redis.Client
	Log      *zap.Logger
	Service  string
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
}

type orderLineJSON struct {
	ProductID string      `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
}

type orderJSON struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Total     json.Number     `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []orderLineJSON `json:"items"`
}

func toOrderJSON(o *orders.Order) orderJSON {
	items := make([]orderLineJSON, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, orderLineJSON{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     money.Number(l.Price),
		})
	}
	return orderJSON{
		ID:        o.ID,
		UserID:    o.UserID,
		Total:     money.Number(o.Total),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}

// createOrder converts the caller's cart into a placed order. The body is
// empty: everything comes from the cart and the authenticated identity.
func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Orders.CreateOrder(ctx, UserID(r.Context()))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	// cache status for fast GETs
	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, o.ID)
	_ = h.Redis.Set(ctx, statusKey, fmt.Sprintf(`{"status":%q}`, o.Status), redisx.TTLStatusCache).Err()

	h.publishPlaced(o, middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

func (h *OrdersHandler) publishPlaced(o *orders.Order, trace string) {
	items := make([]orders.LineQty, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, orders.LineQty{ProductID: l.ProductID, Qty: l.Quantity})
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       trace,
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
			OrderID: o.ID,
			UserID:  o.UserID,
			Total:   money.Number(o.Total),
			Items:   items,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	os, err := h.Orders.ListOrders(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	out := make([]orderJSON, 0, len(os))
	for i := range os {
		out = append(out, toOrderJSON(&os[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orders.GetOrder(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}
