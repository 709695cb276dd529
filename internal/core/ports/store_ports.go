package ports

import "context"

// KeyValueStore is the durable local key-value store the widget state is
// written to. Get reports ok=false when the key has never been written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by stores backed by a server that can go away.
type Pinger interface {
	Ping(ctx context.Context) error
}
