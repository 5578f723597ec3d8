package main

import (
	"fmt"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/noah-isme/studio-api/migrations"
	"github.com/noah-isme/studio-api/pkg/config"
	"github.com/noah-isme/studio-api/pkg/database"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "migration error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate [up|down|status|version|reset|redo]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Database.Configured() {
		return fmt.Errorf("database credentials missing: set DATABASE_URL or DB_HOST/DB_USER/DB_NAME")
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	command := args[0]
	switch command {
	case "up":
		return goose.Up(db.DB, ".")
	case "down":
		return goose.Down(db.DB, ".")
	case "status":
		return goose.Status(db.DB, ".")
	case "version":
		return goose.Version(db.DB, ".")
	case "reset":
		return goose.Reset(db.DB, ".")
	case "redo":
		return goose.Redo(db.DB, ".")
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
