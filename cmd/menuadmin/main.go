package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/cli"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/config"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/storage"
)

// menuadmin - administrative client for the menu platform
func main() {
	cfg := config.Load()

	store, err := storage.NewStore(&storage.Config{
		Driver:        cfg.Storage.Driver,
		Path:          cfg.Storage.Path,
		RedisAddr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisPrefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		log.Fatalf("Failed to open local state: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.New(cfg, store, os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args[1:])
	stop()

	if err := store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close local state: %v\n", err)
	}
	os.Exit(code)
}
