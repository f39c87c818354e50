// Package main is a small database maintenance tool: it applies (or rolls
// back) the embedded goose migrations against DATABASE_URL.
//
// Usage:
//
//	dbtool up        apply all pending migrations (default)
//	dbtool down      roll back the most recent migration
//	dbtool reset     roll back everything
//	dbtool status    print migration status
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/ywjeong/haulbook/migrations"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		log.Fatalf("create migration provider: %v", err)
	}

	if err := run(context.Background(), provider, cmd); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, provider *goose.Provider, cmd string) error {
	switch cmd {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		for _, r := range results {
			log.Printf("applied %s", r.Source.Path)
		}
		if len(results) == 0 {
			log.Println("database is up to date")
		}
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		log.Printf("rolled back %s", result.Source.Path)
	case "reset":
		results, err := provider.DownTo(ctx, 0)
		if err != nil {
			return fmt.Errorf("migrate reset: %w", err)
		}
		log.Printf("rolled back %d migrations", len(results))
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
		for _, s := range statuses {
			state := "pending"
			if s.State == goose.StateApplied {
				state = "applied"
			}
			log.Printf("%-8s %s", state, s.Source.Path)
		}
	default:
		return fmt.Errorf("unknown command %q (want up, down, reset or status)", cmd)
	}
	return nil
}
