package storage

import (
	"fmt"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/cache"
)

// NewStore creates a store based on configuration
func NewStore(cfg *Config) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		path := cfg.Path
		if path == "" {
			path = "menuadmin.db"
		}
		return NewSQLiteStore(path)

	case "redis":
		client, err := cache.NewClient(&cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.RedisPrefix), nil

	case "memory":
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
