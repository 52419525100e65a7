// Command admin_seed creates or promotes the bootstrap ADMIN account.
//
//	ADMIN_EMAIL=ops@example.com ADMIN_PASSWORD=s3cretpass go run ./cmd/admin_seed
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rental-backoffice/internal/app"
	"rental-backoffice/internal/core/config"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()

	email := flag.String("email", envOr("ADMIN_EMAIL", "admin@example.com"), "admin email")
	name := flag.String("name", envOr("ADMIN_NAME", "Administrator"), "display name")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (min 8 chars)")
	flag.Parse()

	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	cfg.DB.AutoMigrate = true
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	created, err := a.Service.EnsureAdmin(ctx, *email, *name, *password)
	if err != nil {
		log.Error("seed admin failed", zap.String("email", *email), zap.Error(err))
		os.Exit(1)
	}
	if created {
		log.Info("admin created", zap.String("email", *email))
	} else {
		log.Info("existing account promoted to admin", zap.String("email", *email))
	}
}
