package main

import (
	"context"

	"go.uber.org/zap"

	"procurement-system/pkg/config"
	"procurement-system/pkg/database/postgresql"
	"procurement-system/pkg/logger"
	"procurement-system/seeders"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.New()
	ctx := context.Background()

	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("could not connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := seeders.RunAll(ctx, pool, log, seeders.NewUserSeeder()); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("seeding complete")
}
