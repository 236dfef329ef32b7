package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Seeder populates one table with its initial data. Seeders must be
// idempotent so the seed command can run against a live database.
type Seeder interface {
	Name() string
	Seed(ctx context.Context, pool *pgxpool.Pool) error
}

func RunAll(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger, seeders ...Seeder) error {
	for _, s := range seeders {
		logger.Info("running seeder", zap.String("seeder", s.Name()))
		if err := s.Seed(ctx, pool); err != nil {
			return err
		}
	}
	return nil
}
