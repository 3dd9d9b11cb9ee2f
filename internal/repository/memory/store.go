// Package memory is a process-local storage driver used for development and tests.
// A single mutex guards every table, which makes multi-row operations such as
// AcceptApplication atomic in the same way a Postgres transaction is.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/my_errors"
)

type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	users        map[string]domain.User
	teams        map[string]domain.Team
	applications map[string]domain.Application
	invitations  map[string]domain.Invitation
}

func NewStore() *Store {
	return &Store{
		now:          time.Now,
		users:        make(map[string]domain.User),
		teams:        make(map[string]domain.Team),
		applications: make(map[string]domain.Application),
		invitations:  make(map[string]domain.Invitation),
	}
}

// Users

func (s *Store) CreateOrUpdateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	stored := *user
	stored.Roles = slices.Clone(user.Roles)
	stored.UpdatedAt = now
	if existing, ok := s.users[user.UserID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	s.users[user.UserID] = stored
	return nil
}

func (s *Store) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, my_errors.ErrUserNotFound
	}
	user.Roles = slices.Clone(user.Roles)
	return &user, nil
}

// Teams

func (s *Store) CreateTeam(_ context.Context, team *domain.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[team.TeamID]; ok {
		return fmt.Errorf("team %s already exists", team.TeamID)
	}
	now := s.now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now
	s.teams[team.TeamID] = cloneTeam(*team)
	return nil
}

func (s *Store) GetTeamByID(_ context.Context, teamID string) (*domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams[teamID]
	if !ok {
		return nil, my_errors.ErrTeamNotFound
	}
	team = cloneTeam(team)
	return &team, nil
}

// GetTeamByCaptain returns the captain's oldest team.
func (s *Store) GetTeamByCaptain(_ context.Context, captainID string) (*domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.Team
	for _, team := range s.teams {
		if team.CaptainID != captainID {
			continue
		}
		if found == nil || team.CreatedAt.Before(found.CreatedAt) ||
			(team.CreatedAt.Equal(found.CreatedAt) && team.TeamID < found.TeamID) {
			t := cloneTeam(team)
			found = &t
		}
	}
	if found == nil {
		return nil, my_errors.ErrTeamNotFound
	}
	return found, nil
}

func (s *Store) UpdateTeam(_ context.Context, teamID string, patch domain.TeamPatch) (*domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[teamID]
	if !ok {
		return nil, my_errors.ErrTeamNotFound
	}
	if patch.MaxPlayers != nil && *patch.MaxPlayers < team.CurrentPlayerCount {
		return nil, my_errors.ErrMaxBelowRosterSize
	}
	patch.Apply(&team)
	team.UpdatedAt = s.now().UTC()
	s.teams[teamID] = cloneTeam(team)
	return &team, nil
}

func (s *Store) SetSquadFull(_ context.Context, teamID string, isFull bool) (*domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[teamID]
	if !ok {
		return nil, my_errors.ErrTeamNotFound
	}
	team.IsSquadFull = isFull
	team.UpdatedAt = s.now().UTC()
	s.teams[teamID] = team
	team = cloneTeam(team)
	return &team, nil
}

// IncrementRoster is the ledger step AcceptApplication runs under the same lock.
func (s *Store) IncrementRoster(_ context.Context, teamID string) (*domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.incrementRosterLocked(teamID)
}

func (s *Store) incrementRosterLocked(teamID string) (*domain.Team, error) {
	team, ok := s.teams[teamID]
	if !ok {
		return nil, my_errors.ErrTeamNotFound
	}
	if !team.HasCapacity() {
		return nil, my_errors.ErrCapacityExceeded
	}
	team.CurrentPlayerCount++
	if team.CurrentPlayerCount >= team.MaxPlayers {
		team.IsSquadFull = true
	}
	team.UpdatedAt = s.now().UTC()
	s.teams[teamID] = team
	team = cloneTeam(team)
	return &team, nil
}

// Applications

func (s *Store) CreateApplication(_ context.Context, app *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findApplicationLocked(app.TeamID, app.PlayerID, true) != nil {
		return my_errors.ErrDuplicateProposal
	}
	s.insertApplicationLocked(app)
	return nil
}

func (s *Store) EnsureApplication(_ context.Context, app *domain.Application) (*domain.Application, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.findApplicationLocked(app.TeamID, app.PlayerID, false); existing != nil {
		return existing, false, nil
	}
	s.insertApplicationLocked(app)
	stored := *app
	return &stored, true, nil
}

func (s *Store) insertApplicationLocked(app *domain.Application) {
	now := s.now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	s.applications[app.ID] = *app
}

// findApplicationLocked returns the newest application for the pair,
// restricted to pending ones when pendingOnly is set.
func (s *Store) findApplicationLocked(teamID, playerID string, pendingOnly bool) *domain.Application {
	var found *domain.Application
	for _, app := range s.applications {
		if app.TeamID != teamID || app.PlayerID != playerID {
			continue
		}
		if pendingOnly && app.Status != domain.ApplicationPending {
			continue
		}
		if found == nil || app.CreatedAt.After(found.CreatedAt) {
			a := app
			found = &a
		}
	}
	return found
}

func (s *Store) GetApplicationByID(_ context.Context, applicationID string) (*domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.applications[applicationID]
	if !ok {
		return nil, my_errors.ErrApplicationNotFound
	}
	return &app, nil
}

func (s *Store) ListApplicationsByTeam(_ context.Context, teamID string) ([]domain.Application, error) {
	return s.listApplications(func(a domain.Application) bool { return a.TeamID == teamID }), nil
}

func (s *Store) ListApplicationsByPlayer(_ context.Context, playerID string) ([]domain.Application, error) {
	return s.listApplications(func(a domain.Application) bool { return a.PlayerID == playerID }), nil
}

func (s *Store) listApplications(match func(domain.Application) bool) []domain.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := []domain.Application{}
	for _, app := range s.applications {
		if match(app) {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps
}

func (s *Store) HasPendingApplication(_ context.Context, teamID, playerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findApplicationLocked(teamID, playerID, true) != nil, nil
}

func (s *Store) TransitionApplication(_ context.Context, applicationID string, from, to domain.ApplicationStatus) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[applicationID]
	if !ok {
		return nil, my_errors.ErrApplicationNotFound
	}
	if app.Status != from || !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("application is %s: %w", app.Status, my_errors.ErrInvalidTransition)
	}
	app.Status = to
	app.UpdatedAt = s.now().UTC()
	s.applications[applicationID] = app
	return &app, nil
}

func (s *Store) AcceptApplication(_ context.Context, applicationID string) (*domain.Application, *domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[applicationID]
	if !ok {
		return nil, nil, my_errors.ErrApplicationNotFound
	}
	if app.Status != domain.ApplicationPending {
		return nil, nil, fmt.Errorf("application is %s: %w", app.Status, my_errors.ErrInvalidTransition)
	}

	team, err := s.incrementRosterLocked(app.TeamID)
	if err != nil {
		return nil, nil, err
	}

	app.Status = domain.ApplicationAccepted
	app.UpdatedAt = s.now().UTC()
	s.applications[applicationID] = app
	return &app, team, nil
}

// Invitations

func (s *Store) CreateInvitation(_ context.Context, inv *domain.Invitation, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.invitations {
		if existing.TeamID != inv.TeamID || existing.PlayerID != inv.PlayerID {
			continue
		}
		if existing.IsLapsed(now) {
			existing.Status = domain.InvitationExpired
			existing.UpdatedAt = s.now().UTC()
			s.invitations[id] = existing
			continue
		}
		if existing.Status == domain.InvitationPending {
			return my_errors.ErrDuplicateProposal
		}
	}
	s.insertInvitationLocked(inv)
	return nil
}

func (s *Store) EnsureInvitation(_ context.Context, inv *domain.Invitation) (*domain.Invitation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *domain.Invitation
	for _, existing := range s.invitations {
		if existing.TeamID != inv.TeamID || existing.PlayerID != inv.PlayerID {
			continue
		}
		if found == nil || existing.CreatedAt.After(found.CreatedAt) {
			e := existing
			found = &e
		}
	}
	if found != nil {
		return found, false, nil
	}
	s.insertInvitationLocked(inv)
	stored := *inv
	return &stored, true, nil
}

func (s *Store) insertInvitationLocked(inv *domain.Invitation) {
	now := s.now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	s.invitations[inv.ID] = *inv
}

func (s *Store) GetInvitationByID(_ context.Context, invitationID string) (*domain.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invitations[invitationID]
	if !ok {
		return nil, my_errors.ErrInvitationNotFound
	}
	return &inv, nil
}

func (s *Store) ListInvitationsByTeam(_ context.Context, teamID string) ([]domain.Invitation, error) {
	return s.listInvitations(func(i domain.Invitation) bool { return i.TeamID == teamID }), nil
}

func (s *Store) ListInvitationsByPlayer(_ context.Context, playerID string) ([]domain.Invitation, error) {
	return s.listInvitations(func(i domain.Invitation) bool { return i.PlayerID == playerID }), nil
}

func (s *Store) listInvitations(match func(domain.Invitation) bool) []domain.Invitation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invs := []domain.Invitation{}
	for _, inv := range s.invitations {
		if match(inv) {
			invs = append(invs, inv)
		}
	}
	sort.Slice(invs, func(i, j int) bool {
		return invs[i].CreatedAt.After(invs[j].CreatedAt)
	})
	return invs
}

func (s *Store) HasLivePendingInvitation(_ context.Context, teamID, playerID string, now time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invitations {
		if inv.TeamID == teamID && inv.PlayerID == playerID && inv.IsLive(now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) RespondToInvitation(_ context.Context, invitationID string, status domain.InvitationStatus, now time.Time) (*domain.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invitations[invitationID]
	if !ok {
		return nil, my_errors.ErrInvitationNotFound
	}
	switch {
	case inv.Status == domain.InvitationExpired:
		return &inv, my_errors.ErrInvitationExpired
	case inv.Status != domain.InvitationPending || !inv.Status.CanTransitionTo(status):
		return nil, fmt.Errorf("invitation is %s: %w", inv.Status, my_errors.ErrInvalidTransition)
	case inv.IsLapsed(now):
		inv.Status = domain.InvitationExpired
		inv.UpdatedAt = s.now().UTC()
		s.invitations[invitationID] = inv
		return &inv, my_errors.ErrInvitationExpired
	}

	inv.Status = status
	inv.UpdatedAt = s.now().UTC()
	s.invitations[invitationID] = inv
	return &inv, nil
}

func cloneTeam(t domain.Team) domain.Team {
	t.PreferredFormats = slices.Clone(t.PreferredFormats)
	return t
}
