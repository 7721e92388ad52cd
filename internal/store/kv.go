package store

import "context"

// KV is a durable key-value medium holding whole serialized values.
// Get reports ok=false when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Storage keys of the three persisted records.
const (
	KeyAccounts = "yo-yo-delivery-users-list"
	KeyOrders   = "yo-yo-delivery-orders"
	KeySession  = "yo-yo-delivery-user"
)
