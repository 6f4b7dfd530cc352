package tenant

import (
	"context"
	"testing"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/storage"
)

func TestFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"/admin/r/viva/categories", "viva", true},
		{"/admin/r/viva", "viva", true},
		{"/menu/avva", "avva", true},
		{"/menu/avva/c/12", "avva", true},
		{"/menu/avva?x=1", "avva", true},
		{"/admin/platform/restaurants", "", false},
		{"/admin/r/", "", false},
		{"/login", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := FromPath(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FromPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolverPrecedence(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	r := NewResolver(store)

	if _, ok := r.Resolve(ctx); ok {
		t.Fatal("expected no tenant on empty path and storage")
	}

	store.Set(ctx, storage.KeyRestaurantLegacy, "old")
	if got, _ := r.Resolve(ctx); got != "old" {
		t.Errorf("legacy fallback = %q, want old", got)
	}

	store.Set(ctx, storage.KeyRestaurant, "new")
	if got, _ := r.Resolve(ctx); got != "new" {
		t.Errorf("primary key = %q, want new", got)
	}

	pathCtx := WithPath(ctx, "/admin/r/fromurl/dishes")
	if got, _ := r.Resolve(pathCtx); got != "fromurl" {
		t.Errorf("path = %q, want fromurl", got)
	}
}

func TestSelectWritesBothKeys(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	r := NewResolver(store)

	slug, err := r.Select(ctx, " VIVA Bar ")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if slug != "viva-bar" {
		t.Errorf("normalized slug = %q", slug)
	}
	for _, key := range []string{storage.KeyRestaurant, storage.KeyRestaurantLegacy} {
		if v, _, _ := store.Get(ctx, key); v != "viva-bar" {
			t.Errorf("%s = %q, want viva-bar", key, v)
		}
	}

	if _, err := r.Select(ctx, "   "); err != ErrInvalidSlug {
		t.Errorf("Select(blank) err = %v, want ErrInvalidSlug", err)
	}

	if err := r.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d keys after Clear", store.Len())
	}
}
