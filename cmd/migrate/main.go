package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"procurement-system/migrations"
	"procurement-system/pkg/config"
)

func main() {
	command := flag.String("command", "up", "goose command: up, down, status, version")
	flag.Parse()

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("could not set goose dialect: %v", err)
	}

	var runErr error
	switch *command {
	case "up":
		runErr = goose.Up(db, ".")
	case "down":
		runErr = goose.Down(db, ".")
	case "status":
		runErr = goose.Status(db, ".")
	case "version":
		runErr = goose.Version(db, ".")
	default:
		log.Fatalf("unknown command %q", *command)
	}
	if runErr != nil {
		log.Fatalf("migration %s failed: %v", *command, runErr)
	}
}
