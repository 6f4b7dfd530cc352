package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, KeyToken); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}

	if err := s.Set(ctx, KeyToken, "T1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, KeyToken, "T2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if err := s.Set(ctx, KeyIsAdmin, "false"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := s.Get(ctx, KeyToken)
	if err != nil || !ok || v != "T2" {
		t.Fatalf("Get token = %q, %v, %v; want T2", v, ok, err)
	}

	if err := s.Remove(ctx, KeyToken, KeyIsAdmin, "missing"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	for _, k := range []string{KeyToken, KeyIsAdmin} {
		if _, ok, _ := s.Get(ctx, k); ok {
			t.Errorf("key %q still present after Remove", k)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Set(context.Background(), KeyToken, "x"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	exerciseStore(t, s)

	if err := s.Set(context.Background(), KeyRestaurant, "viva"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get(context.Background(), KeyRestaurant)
	if err != nil || !ok || v != "viva" {
		t.Errorf("value after reopen = %q, %v, %v; want viva", v, ok, err)
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(&Config{Driver: "memory"})
	if err != nil {
		t.Fatalf("memory driver: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("memory driver returned %T", s)
	}

	if _, err := NewStore(&Config{Driver: "etcd"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
