// Package fulfillment consumes cancellation events published by the external
// fulfillment collaborator and compensates them: reserved stock goes back to
// the catalog and the order moves to cancelled.
package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/autoshop/autoshop-api/internal/kafka"
	"github.com/autoshop/autoshop-api/internal/money"
	"github.com/autoshop/autoshop-api/internal/orders"
	"github.com/autoshop/autoshop-api/internal/redisx"
)

// Cache is the Redis surface the worker needs: event dedup and status-cache
// invalidation.
type Cache interface {
	Exists(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Publisher emits the compensation event. *kafka.Producer satisfies it.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Orders      *orders.Service
	Redis       Cache
	Producer    Publisher // publishes order.stock.released
	Log         *zap.Logger
	ServiceName string
}

// HandleOrderCancelled is the consumer handler for order.cancelled.
func (s *Service) HandleOrderCancelled(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderCancelled {
		return nil // ignore
	}

	// dedup by event_id; the cancel itself is idempotent, this just cuts noise
	dkey := fmt.Sprintf(redisx.KeyDedup, "fulfillment", env.EventID)
	if seen, _ := s.Redis.Exists(ctx, dkey); seen {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderCancelledPayload](env.Payload)
	if err != nil {
		return err
	}

	o, err := s.Orders.CancelOrder(ctx, p.OrderID)
	if err != nil {
		// the offset stays uncommitted and the event is redelivered; the dedup
		// key must not exist yet or the retry would be skipped
		return err
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup)
	s.Log.Info("order cancelled, stock released",
		zap.String("order_id", o.ID),
		zap.String("reason", p.Reason),
		zap.Int("lines", len(o.Items)))

	// invalidate the cached status so reads see the transition
	_ = s.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrderStatus, o.ID))

	return s.publishReleased(o, env.TraceID)
}

func (s *Service) publishReleased(o *orders.Order, trace string) error {
	items := make([]orders.LineQty, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, orders.LineQty{ProductID: l.ProductID, Qty: l.Quantity})
	}
	// value recomputed tolerantly: a dirty stored line must not block compensation
	value := s.Orders.RecalcTotal(o)

	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventStockReleased,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(orders.StockReleasedPayload{
			OrderID: o.ID,
			Items:   items,
			Value:   money.Number(value),
		}),
	}
	s.Producer.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventStockReleased)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	return nil
}
