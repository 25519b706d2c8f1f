package redisx

import "time"

const (
	// Cache of a single product payload: product:{product_id}
	KeyProduct = "product:%s"

	// Cache of an order status: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Revoked bearer tokens after logout: auth:revoked:{sha256(token)}
	KeyRevokedToken = "auth:revoked:%s"

	// Dedup of consumed events: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLProductCache = 5 * time.Minute
	TTLStatusCache  = 5 * time.Minute
	TTLDedup        = 48 * time.Hour
)
