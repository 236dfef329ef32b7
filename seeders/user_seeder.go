package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"procurement-system/internal/workflow"
	"procurement-system/pkg/utils"
)

type seedUser struct {
	login          string
	fio            string
	phone          string
	password       string
	isPrimaryAdmin bool
	allowed        []workflow.Status
}

var defaultUsers = []seedUser{
	{
		login:          "admin",
		fio:            "Primary Administrator",
		phone:          "+992900000001",
		password:       "admin",
		isPrimaryAdmin: true,
	},
	{
		login:    "reviewer",
		fio:      "Request Reviewer",
		phone:    "+992900000002",
		password: "reviewer",
		allowed:  []workflow.Status{workflow.StatusInReview, workflow.StatusPending},
	},
	{
		login:    "buyer",
		fio:      "Purchasing Officer",
		phone:    "+992900000003",
		password: "buyer",
		allowed:  []workflow.Status{workflow.StatusInProgress, workflow.StatusDelivered, workflow.StatusCanceled},
	},
}

type UserSeeder struct{}

func NewUserSeeder() Seeder { return &UserSeeder{} }

func (s *UserSeeder) Name() string { return "users" }

func (s *UserSeeder) Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for _, u := range defaultUsers {
		hash, err := utils.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("could not hash password for %s: %w", u.login, err)
		}

		var userID uint64
		err = pool.QueryRow(ctx, `
			INSERT INTO users (login, fio, phone, password_hash, is_primary_admin, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			ON CONFLICT (login) DO UPDATE SET fio = EXCLUDED.fio, phone = EXCLUDED.phone
			RETURNING id`,
			u.login, u.fio, u.phone, hash, u.isPrimaryAdmin,
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("could not seed user %s: %w", u.login, err)
		}

		for _, status := range u.allowed {
			_, err := pool.Exec(ctx, `
				INSERT INTO user_allowed_statuses (user_id, status)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING`,
				userID, string(status),
			)
			if err != nil {
				return fmt.Errorf("could not seed allowed status for %s: %w", u.login, err)
			}
		}
	}
	return nil
}
