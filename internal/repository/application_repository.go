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

const applicationColumns = `id, team_id, player_id, status, message, created_at, updated_at`

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) CreateApplication(ctx context.Context, app *domain.Application) error {
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockPair(ctx, tx, "application", app.TeamID, app.PlayerID); err != nil {
			return err
		}

		var exists bool
		query := `
            SELECT EXISTS(
                SELECT 1 FROM team_applications
                WHERE team_id = $1 AND player_id = $2 AND status = 'pending'
            )
        `
		if err := tx.QueryRow(ctx, query, app.TeamID, app.PlayerID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check pending application: %w", err)
		}
		if exists {
			return my_errors.ErrDuplicateProposal
		}

		return insertApplication(ctx, tx, app)
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) EnsureApplication(ctx context.Context, app *domain.Application) (*domain.Application, bool, error) {
	var (
		stored  *domain.Application
		created bool
	)
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockPair(ctx, tx, "application", app.TeamID, app.PlayerID); err != nil {
			return err
		}

		query := `
            SELECT ` + applicationColumns + `
            FROM team_applications
            WHERE team_id = $1 AND player_id = $2
            ORDER BY created_at DESC
            LIMIT 1
        `
		existing, err := scanApplication(tx.QueryRow(ctx, query, app.TeamID, app.PlayerID))
		if err == nil {
			stored = existing
			return nil
		}
		if !errors.Is(err, my_errors.ErrApplicationNotFound) {
			return err
		}

		if err := insertApplication(ctx, tx, app); err != nil {
			return err
		}
		copied := *app
		stored, created = &copied, true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to ensure application: %w", err)
	}
	return stored, created, nil
}

func insertApplication(ctx context.Context, tx pgx.Tx, app *domain.Application) error {
	query := `
        INSERT INTO team_applications (id, team_id, player_id, status, message)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `
	err := tx.QueryRow(ctx, query, app.ID, app.TeamID, app.PlayerID, string(app.Status), app.Message).
		Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return my_errors.ErrDuplicateProposal
		}
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM team_applications WHERE id = $1`
	return scanApplication(r.pool.QueryRow(ctx, query, applicationID))
}

func (r *ApplicationRepository) ListApplicationsByTeam(ctx context.Context, teamID string) ([]domain.Application, error) {
	query := `
        SELECT ` + applicationColumns + `
        FROM team_applications
        WHERE team_id = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, teamID)
}

func (r *ApplicationRepository) ListApplicationsByPlayer(ctx context.Context, playerID string) ([]domain.Application, error) {
	query := `
        SELECT ` + applicationColumns + `
        FROM team_applications
        WHERE player_id = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, playerID)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, arg string) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) HasPendingApplication(ctx context.Context, teamID, playerID string) (bool, error) {
	query := `
        SELECT EXISTS(
            SELECT 1 FROM team_applications
            WHERE team_id = $1 AND player_id = $2 AND status = 'pending'
        )
    `
	var exists bool
	if err := r.pool.QueryRow(ctx, query, teamID, playerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending application: %w", err)
	}
	return exists, nil
}

func (r *ApplicationRepository) TransitionApplication(ctx context.Context, applicationID string, from, to domain.ApplicationStatus) (*domain.Application, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%s to %s: %w", from, to, my_errors.ErrInvalidTransition)
	}

	var app *domain.Application
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		app, err = transitionApplication(ctx, tx, applicationID, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *ApplicationRepository) AcceptApplication(ctx context.Context, applicationID string) (*domain.Application, *domain.Team, error) {
	var (
		app  *domain.Application
		team *domain.Team
	)
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		app, err = transitionApplication(ctx, tx, applicationID, domain.ApplicationPending, domain.ApplicationAccepted)
		if err != nil {
			return err
		}
		// A capacity failure rolls the status change back with the transaction.
		team, err = incrementRoster(ctx, tx, app.TeamID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return app, team, nil
}

// transitionApplication is a compare-and-set on status; zero affected rows means
// the application is missing or no longer in from.
func transitionApplication(ctx context.Context, tx pgx.Tx, applicationID string, from, to domain.ApplicationStatus) (*domain.Application, error) {
	query := `
        UPDATE team_applications
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3
        RETURNING ` + applicationColumns
	app, err := scanApplication(tx.QueryRow(ctx, query, string(to), applicationID, string(from)))
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, my_errors.ErrApplicationNotFound) {
		return nil, err
	}

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM team_applications WHERE id = $1`, applicationID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, my_errors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application status: %w", err)
	}
	return nil, fmt.Errorf("application is %s: %w", current, my_errors.ErrInvalidTransition)
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var (
		app    domain.Application
		status string
	)
	err := row.Scan(
		&app.ID,
		&app.TeamID,
		&app.PlayerID,
		&status,
		&app.Message,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, my_errors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}
	app.Status = domain.ApplicationStatus(status)
	return &app, nil
}
