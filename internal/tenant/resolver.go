package tenant

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/storage"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/utils"
)

// ErrInvalidSlug is returned by Select for slugs that normalize to "".
var ErrInvalidSlug = errors.New("invalid restaurant slug")

// Resolver derives the active restaurant from the navigation path, falling
// back to the locally selected one.
type Resolver struct {
	store storage.Store
}

func NewResolver(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve is evaluated on every call: path segment first, then the primary
// storage key, then the legacy key.
func (r *Resolver) Resolve(ctx context.Context) (string, bool) {
	if slug, ok := FromPath(PathFrom(ctx)); ok {
		return slug, true
	}
	if r.store == nil {
		return "", false
	}
	for _, key := range []string{storage.KeyRestaurant, storage.KeyRestaurantLegacy} {
		v, ok, err := r.store.Get(ctx, key)
		if err != nil {
			log.Printf("tenant: failed to read %s: %v", key, err)
			continue
		}
		if ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Select persists slug as the selected restaurant. Both keys are written so
// older builds reading only the legacy key keep working; the legacy key will
// be dropped once no client reads it.
func (r *Resolver) Select(ctx context.Context, slug string) (string, error) {
	normalized := utils.NormalizeSlug(slug)
	if normalized == "" {
		return "", ErrInvalidSlug
	}
	for _, key := range []string{storage.KeyRestaurant, storage.KeyRestaurantLegacy} {
		if err := r.store.Set(ctx, key, normalized); err != nil {
			return "", fmt.Errorf("failed to select restaurant: %w", err)
		}
	}
	return normalized, nil
}

// Clear forgets the selected restaurant.
func (r *Resolver) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, storage.KeyRestaurant, storage.KeyRestaurantLegacy)
}
