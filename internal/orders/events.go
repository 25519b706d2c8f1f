package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced    = "OrderPlaced"
	EventOrderCancelled = "OrderCancelled"
	EventStockReleased  = "StockReleased"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // one of the consts above
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g. "autoshop-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // usually order_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload types per event ----

type LineQty struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type OrderPlacedPayload struct {
	OrderID string      `json:"order_id"`
	UserID  string      `json:"user_id"`
	Total   json.Number `json:"total"` // fixed-point, 2 digits
	Items   []LineQty   `json:"items"`
}

// OrderCancelledPayload is produced by the external fulfillment collaborator;
// we only consume it.
type OrderCancelledPayload struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason,omitempty"`
}

type StockReleasedPayload struct {
	OrderID string      `json:"order_id"`
	Items   []LineQty   `json:"items"`
	Value   json.Number `json:"value"` // total of the released lines
}
