// cmd/migrate/main.go
// Copies users and recipes from a source database (e.g. a legacy MySQL
// instance) into the configured target database.
//
// Usage:
//
//	SOURCE_DRIVER=mysql \
//	SOURCE_DSN="user:pass@tcp(host:3306)/recipes?parseTime=true" \
//	DB_PASS="pgpass" SECRET_KEY=x DEBUG=true \
//	go run ./cmd/migrate
package main

import (
	"context"
	"log"

	"github.com/padraicbc/recipeapi/config"
	bundb "github.com/padraicbc/recipeapi/db"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// --- Source ---
	if cfg.SourceDSN == "" {
		log.Fatal("SOURCE_DSN required, e.g.: user:pass@tcp(host:3306)/recipes?parseTime=true")
	}
	src, err := bundb.Open(ctx, cfg.SourceDriver, cfg.SourceDSN, false)
	if err != nil {
		log.Fatalf("open source: %v", err)
	}
	defer src.Close()
	log.Printf("connected to source (%s)", cfg.SourceDriver)

	// --- Target ---
	dst, err := bundb.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf("open target: %v", err)
	}
	defer dst.Close()
	log.Printf("connected to target (%s)", cfg.DBDriver)

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, dst); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	n, err := bundb.Copy(ctx, src, dst, batchSize)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}

	log.Printf("%-10s  %d rows migrated", "users", n.Users)
	log.Printf("%-10s  %d rows migrated", "recipes", n.Recipes)
	log.Println("migration complete")
}
