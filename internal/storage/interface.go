package storage

import (
	"context"
	"errors"
)

// Keys of the client-local state. Nothing else is persisted.
const (
	KeyToken   = "token"
	KeyIsAdmin = "is_admin"

	// KeyRestaurant is the selected restaurant slug.
	KeyRestaurant = "restaurant_slug"
	// KeyRestaurantLegacy is read and written alongside KeyRestaurant until
	// older installs have migrated; see tenant.Resolver.Select.
	KeyRestaurantLegacy = "restaurant"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// Store is the client-local key/value state that survives restarts.
type Store interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key, value string) error

	// Remove deletes the keys; missing keys are not an error
	Remove(ctx context.Context, keys ...string) error

	Close() error
}

// Config holds the storage configuration
type Config struct {
	Driver string // sqlite, redis, memory

	// SQLite
	Path string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}
