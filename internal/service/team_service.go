package service

import (
	"context"
	"fmt"
	"strings"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/my_errors"

	"github.com/google/uuid"
)

type TeamService struct {
	teamRepo          TeamRepository
	defaultMaxPlayers int
}

func NewTeamService(teamRepo TeamRepository, defaultMaxPlayers int) *TeamService {
	if defaultMaxPlayers <= 0 {
		defaultMaxPlayers = domain.DefaultMaxPlayers
	}
	return &TeamService{
		teamRepo:          teamRepo,
		defaultMaxPlayers: defaultMaxPlayers,
	}
}

// CreateTeam registers a team captained by the caller.
func (s *TeamService) CreateTeam(ctx context.Context, caller domain.Identity, team *domain.Team) (*domain.Team, error) {
	if !caller.HasRole(domain.RoleCaptain) {
		return nil, fmt.Errorf("only captains can create teams: %w", my_errors.ErrWrongRole)
	}

	team.Name = strings.TrimSpace(team.Name)
	if team.Name == "" {
		return nil, fmt.Errorf("name: %w", my_errors.ErrEmptyField)
	}
	if team.MaxPlayers == 0 {
		team.MaxPlayers = s.defaultMaxPlayers
	}
	if team.MaxPlayers < 0 {
		return nil, fmt.Errorf("max_players must be positive: %w", my_errors.ErrInvalidInput)
	}

	team.TeamID = uuid.NewString()
	team.CaptainID = caller.UserID
	team.CurrentPlayerCount = 0
	team.IsSquadFull = false

	if err := s.teamRepo.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return s.teamRepo.GetTeamByID(ctx, team.TeamID)
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team_id: %w", my_errors.ErrEmptyField)
	}
	return s.teamRepo.GetTeamByID(ctx, teamID)
}

func (s *TeamService) UpdateTeam(ctx context.Context, caller domain.Identity, teamID string, patch domain.TeamPatch) (*domain.Team, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("name: %w", my_errors.ErrEmptyField)
	}
	if patch.MaxPlayers != nil && *patch.MaxPlayers <= 0 {
		return nil, fmt.Errorf("max_players must be positive: %w", my_errors.ErrInvalidInput)
	}

	team, err := requireCaptain(ctx, s.teamRepo, caller, teamID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return team, nil
	}

	updated, err := s.teamRepo.UpdateTeam(ctx, teamID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return updated, nil
}

// SetSquadFull is the captain's manual override of the squad-full flag.
func (s *TeamService) SetSquadFull(ctx context.Context, caller domain.Identity, teamID string, isFull bool) (*domain.Team, error) {
	if _, err := requireCaptain(ctx, s.teamRepo, caller, teamID); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.SetSquadFull(ctx, teamID, isFull)
	if err != nil {
		return nil, fmt.Errorf("failed to set squad status: %w", err)
	}
	return team, nil
}

// requireCaptain loads the team and checks the caller captains it.
func requireCaptain(ctx context.Context, teams TeamRepository, caller domain.Identity, teamID string) (*domain.Team, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team_id: %w", my_errors.ErrEmptyField)
	}

	team, err := teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.CaptainID != caller.UserID {
		return nil, my_errors.ErrNotCaptain
	}
	return team, nil
}
