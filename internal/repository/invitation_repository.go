package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/my_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invitationColumns = `id, team_id, player_id, invited_by, status, message, expires_at, created_at, updated_at`

type InvitationRepository struct {
	pool *pgxpool.Pool
}

func NewInvitationRepository(pool *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{pool: pool}
}

func (r *InvitationRepository) CreateInvitation(ctx context.Context, inv *domain.Invitation, now time.Time) error {
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockPair(ctx, tx, "invitation", inv.TeamID, inv.PlayerID); err != nil {
			return err
		}

		expireQuery := `
            UPDATE team_invitations
            SET status = 'expired', updated_at = NOW()
            WHERE team_id = $1 AND player_id = $2 AND status = 'pending' AND expires_at <= $3
        `
		if _, err := tx.Exec(ctx, expireQuery, inv.TeamID, inv.PlayerID, now); err != nil {
			return fmt.Errorf("failed to expire lapsed invitations: %w", err)
		}

		var exists bool
		existsQuery := `
            SELECT EXISTS(
                SELECT 1 FROM team_invitations
                WHERE team_id = $1 AND player_id = $2 AND status = 'pending'
            )
        `
		if err := tx.QueryRow(ctx, existsQuery, inv.TeamID, inv.PlayerID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check pending invitation: %w", err)
		}
		if exists {
			return my_errors.ErrDuplicateProposal
		}

		return insertInvitation(ctx, tx, inv)
	})
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) EnsureInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, bool, error) {
	var (
		stored  *domain.Invitation
		created bool
	)
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockPair(ctx, tx, "invitation", inv.TeamID, inv.PlayerID); err != nil {
			return err
		}

		query := `
            SELECT ` + invitationColumns + `
            FROM team_invitations
            WHERE team_id = $1 AND player_id = $2
            ORDER BY created_at DESC
            LIMIT 1
        `
		existing, err := scanInvitation(tx.QueryRow(ctx, query, inv.TeamID, inv.PlayerID))
		if err == nil {
			stored = existing
			return nil
		}
		if !errors.Is(err, my_errors.ErrInvitationNotFound) {
			return err
		}

		if err := insertInvitation(ctx, tx, inv); err != nil {
			return err
		}
		copied := *inv
		stored, created = &copied, true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to ensure invitation: %w", err)
	}
	return stored, created, nil
}

func insertInvitation(ctx context.Context, tx pgx.Tx, inv *domain.Invitation) error {
	query := `
        INSERT INTO team_invitations (id, team_id, player_id, invited_by, status, message, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at
    `
	err := tx.QueryRow(ctx, query,
		inv.ID,
		inv.TeamID,
		inv.PlayerID,
		inv.InvitedBy,
		string(inv.Status),
		inv.Message,
		inv.ExpiresAt,
	).Scan(&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return my_errors.ErrDuplicateProposal
		}
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) GetInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM team_invitations WHERE id = $1`
	return scanInvitation(r.pool.QueryRow(ctx, query, invitationID))
}

func (r *InvitationRepository) ListInvitationsByTeam(ctx context.Context, teamID string) ([]domain.Invitation, error) {
	query := `
        SELECT ` + invitationColumns + `
        FROM team_invitations
        WHERE team_id = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, teamID)
}

func (r *InvitationRepository) ListInvitationsByPlayer(ctx context.Context, playerID string) ([]domain.Invitation, error) {
	query := `
        SELECT ` + invitationColumns + `
        FROM team_invitations
        WHERE player_id = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, playerID)
}

func (r *InvitationRepository) list(ctx context.Context, query string, arg string) ([]domain.Invitation, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invs := []domain.Invitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invitations: %w", err)
	}
	return invs, nil
}

func (r *InvitationRepository) HasLivePendingInvitation(ctx context.Context, teamID, playerID string, now time.Time) (bool, error) {
	query := `
        SELECT EXISTS(
            SELECT 1 FROM team_invitations
            WHERE team_id = $1 AND player_id = $2 AND status = 'pending' AND expires_at > $3
        )
    `
	var exists bool
	if err := r.pool.QueryRow(ctx, query, teamID, playerID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending invitation: %w", err)
	}
	return exists, nil
}

func (r *InvitationRepository) RespondToInvitation(ctx context.Context, invitationID string, status domain.InvitationStatus, now time.Time) (*domain.Invitation, error) {
	var (
		inv     *domain.Invitation
		expired bool
	)
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		current, err := scanInvitation(tx.QueryRow(ctx,
			`SELECT `+invitationColumns+` FROM team_invitations WHERE id = $1 FOR UPDATE`, invitationID))
		if err != nil {
			return err
		}

		switch {
		case current.Status == domain.InvitationExpired:
			inv, expired = current, true
			return nil
		case current.Status != domain.InvitationPending || !current.Status.CanTransitionTo(status):
			return fmt.Errorf("invitation is %s: %w", current.Status, my_errors.ErrInvalidTransition)
		case current.IsLapsed(now):
			// Expiry wins over the response; the corrected status is committed.
			status, expired = domain.InvitationExpired, true
		}

		query := `
            UPDATE team_invitations
            SET status = $1, updated_at = NOW()
            WHERE id = $2
            RETURNING ` + invitationColumns
		inv, err = scanInvitation(tx.QueryRow(ctx, query, string(status), invitationID))
		return err
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return inv, my_errors.ErrInvitationExpired
	}
	return inv, nil
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	var (
		inv    domain.Invitation
		status string
	)
	err := row.Scan(
		&inv.ID,
		&inv.TeamID,
		&inv.PlayerID,
		&inv.InvitedBy,
		&status,
		&inv.Message,
		&inv.ExpiresAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, my_errors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to scan invitation: %w", err)
	}
	inv.Status = domain.InvitationStatus(status)
	return &inv, nil
}
