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

const teamColumns = `team_id, name, captain_id, description, city, home_ground, preferred_formats,
        max_players, current_player_count, is_squad_full, created_at, updated_at`

type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *domain.Team) error {
	query := `
        INSERT INTO teams (team_id, name, captain_id, description, city, home_ground, preferred_formats, max_players)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, query,
		team.TeamID,
		team.Name,
		team.CaptainID,
		team.Description,
		team.City,
		team.HomeGround,
		nonNilStrings(team.PreferredFormats),
		team.MaxPlayers,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE team_id = $1`
	return scanTeam(r.pool.QueryRow(ctx, query, teamID))
}

// GetTeamByCaptain returns the captain's oldest team.
func (r *TeamRepository) GetTeamByCaptain(ctx context.Context, captainID string) (*domain.Team, error) {
	query := `
        SELECT ` + teamColumns + `
        FROM teams
        WHERE captain_id = $1
        ORDER BY created_at, team_id
        LIMIT 1
    `
	return scanTeam(r.pool.QueryRow(ctx, query, captainID))
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, teamID string, patch domain.TeamPatch) (*domain.Team, error) {
	var updated *domain.Team
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		team, err := scanTeam(tx.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE team_id = $1 FOR UPDATE`, teamID))
		if err != nil {
			return err
		}
		if patch.MaxPlayers != nil && *patch.MaxPlayers < team.CurrentPlayerCount {
			return my_errors.ErrMaxBelowRosterSize
		}

		patch.Apply(team)

		query := `
            UPDATE teams
            SET name = $1, description = $2, city = $3, home_ground = $4,
                preferred_formats = $5, max_players = $6, is_squad_full = $7, updated_at = NOW()
            WHERE team_id = $8
            RETURNING ` + teamColumns
		updated, err = scanTeam(tx.QueryRow(ctx, query,
			team.Name,
			team.Description,
			team.City,
			team.HomeGround,
			nonNilStrings(team.PreferredFormats),
			team.MaxPlayers,
			team.IsSquadFull,
			teamID,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return updated, nil
}

func (r *TeamRepository) SetSquadFull(ctx context.Context, teamID string, isFull bool) (*domain.Team, error) {
	query := `
        UPDATE teams
        SET is_squad_full = $1, updated_at = NOW()
        WHERE team_id = $2
        RETURNING ` + teamColumns
	team, err := scanTeam(r.pool.QueryRow(ctx, query, isFull, teamID))
	if err != nil {
		return nil, fmt.Errorf("failed to set squad full: %w", err)
	}
	return team, nil
}

// IncrementRoster takes one roster slot in its own transaction. AcceptApplication
// runs the same ledger step inside the status change's transaction.
func (r *TeamRepository) IncrementRoster(ctx context.Context, teamID string) (*domain.Team, error) {
	var team *domain.Team
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		team, err = incrementRoster(ctx, tx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// incrementRoster is the capacity ledger's compare-and-increment. The row lock
// taken by UPDATE makes concurrent callers re-evaluate the ceiling in turn.
func incrementRoster(ctx context.Context, tx pgx.Tx, teamID string) (*domain.Team, error) {
	query := `
        UPDATE teams
        SET current_player_count = current_player_count + 1,
            is_squad_full = (current_player_count + 1 >= max_players),
            updated_at = NOW()
        WHERE team_id = $1
          AND current_player_count < max_players
          AND NOT is_squad_full
        RETURNING ` + teamColumns
	team, err := scanTeam(tx.QueryRow(ctx, query, teamID))
	if err == nil {
		return team, nil
	}
	if !errors.Is(err, my_errors.ErrTeamNotFound) {
		return nil, fmt.Errorf("failed to increment roster: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM teams WHERE team_id = $1)`, teamID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check team existence: %w", err)
	}
	if !exists {
		return nil, my_errors.ErrTeamNotFound
	}
	return nil, my_errors.ErrCapacityExceeded
}

func scanTeam(row rowScanner) (*domain.Team, error) {
	var team domain.Team
	err := row.Scan(
		&team.TeamID,
		&team.Name,
		&team.CaptainID,
		&team.Description,
		&team.City,
		&team.HomeGround,
		&team.PreferredFormats,
		&team.MaxPlayers,
		&team.CurrentPlayerCount,
		&team.IsSquadFull,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, my_errors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return &team, nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
