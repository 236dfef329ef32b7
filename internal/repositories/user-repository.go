package repositories

import (
	"context"
	"errors"
	"fmt"

	"procurement-system/internal/entities"
	apperrors "procurement-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByLogin(ctx context.Context, login string) (*entities.User, error)
	GetAllowedStatuses(ctx context.Context, userID uint64) ([]string, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

const userColumns = `id, login, fio, phone, password_hash, is_primary_admin, created_at, updated_at`

func (r *UserRepository) scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Login, &u.Fio, &u.Phone, &u.PasswordHash,
		&u.IsPrimaryAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not scan user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	return r.scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = $1 AND deleted_at IS NULL`
	return r.scanUser(r.storage.QueryRow(ctx, query, login))
}

// GetAllowedStatuses returns the raw allow-list rows for the user. The
// permission service parses them into workflow statuses and caches the
// result.
func (r *UserRepository) GetAllowedStatuses(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT status FROM user_allowed_statuses WHERE user_id = $1 ORDER BY status`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load allowed statuses: %w", err)
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("could not scan allowed status: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}
