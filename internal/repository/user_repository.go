package repository

import (
	"context"
	"errors"
	"fmt"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/my_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) CreateOrUpdateUser(ctx context.Context, user *domain.User) error {
	query := `
        INSERT INTO users (user_id, full_name, roles, is_active)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id)
        DO UPDATE SET
            full_name = EXCLUDED.full_name,
            roles = EXCLUDED.roles,
            is_active = EXCLUDED.is_active,
            updated_at = NOW()
    `
	roles := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = string(role)
	}
	_, err := r.pool.Exec(ctx, query, user.UserID, user.FullName, roles, user.IsActive)
	if err != nil {
		return fmt.Errorf("failed to create/update user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
        SELECT user_id, full_name, roles, is_active, created_at, updated_at
        FROM users
        WHERE user_id = $1
    `
	var (
		user  domain.User
		roles []string
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&user.UserID,
		&user.FullName,
		&roles,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, my_errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Roles = make([]domain.Role, len(roles))
	for i, role := range roles {
		user.Roles[i] = domain.Role(role)
	}
	return &user, nil
}
