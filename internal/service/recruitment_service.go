package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/my_errors"

	"github.com/google/uuid"
)

const (
	DefaultInvitationTTL      = 7 * 24 * time.Hour
	DefaultSwipeInvitationTTL = 30 * 24 * time.Hour
)

// RecruitmentPolicy holds the invitation lifetimes.
type RecruitmentPolicy struct {
	InvitationTTL      time.Duration
	SwipeInvitationTTL time.Duration
}

type RecruitmentService struct {
	teamRepo TeamRepository
	appRepo  ApplicationRepository
	invRepo  InvitationRepository
	userRepo UserRepository
	matcher  *MatchDetector
	policy   RecruitmentPolicy
	now      func() time.Time
}

func NewRecruitmentService(
	teamRepo TeamRepository,
	appRepo ApplicationRepository,
	invRepo InvitationRepository,
	userRepo UserRepository,
	policy RecruitmentPolicy,
) *RecruitmentService {
	if policy.InvitationTTL <= 0 {
		policy.InvitationTTL = DefaultInvitationTTL
	}
	if policy.SwipeInvitationTTL <= 0 {
		policy.SwipeInvitationTTL = DefaultSwipeInvitationTTL
	}
	return &RecruitmentService{
		teamRepo: teamRepo,
		appRepo:  appRepo,
		invRepo:  invRepo,
		userRepo: userRepo,
		matcher:  NewMatchDetector(appRepo, invRepo),
		policy:   policy,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for expiry decisions.
func (s *RecruitmentService) WithClock(now func() time.Time) *RecruitmentService {
	s.now = now
	return s
}

// Applications

func (s *RecruitmentService) Apply(ctx context.Context, caller domain.Identity, teamID string, message *string) (*domain.Application, error) {
	if !caller.HasRole(domain.RolePlayer) {
		return nil, fmt.Errorf("only players can apply: %w", my_errors.ErrWrongRole)
	}
	if teamID == "" {
		return nil, fmt.Errorf("team_id: %w", my_errors.ErrEmptyField)
	}

	if _, err := s.teamRepo.GetTeamByID(ctx, teamID); err != nil {
		return nil, err
	}

	app := &domain.Application{
		ID:       uuid.NewString(),
		TeamID:   teamID,
		PlayerID: caller.UserID,
		Status:   domain.ApplicationPending,
		Message:  trimMessage(message),
	}
	if err := s.appRepo.CreateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to apply: %w", err)
	}
	return app, nil
}

func (s *RecruitmentService) Withdraw(ctx context.Context, caller domain.Identity, applicationID string) (*domain.Application, error) {
	app, err := s.appRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.PlayerID != caller.UserID {
		return nil, my_errors.ErrNotOwner
	}
	if app.Status != domain.ApplicationPending {
		return nil, fmt.Errorf("can only withdraw pending applications: %w", my_errors.ErrInvalidTransition)
	}

	return s.appRepo.TransitionApplication(ctx, applicationID, domain.ApplicationPending, domain.ApplicationWithdrawn)
}

func (s *RecruitmentService) ListApplications(ctx context.Context, caller domain.Identity, teamID string) ([]domain.Application, error) {
	if _, err := requireCaptain(ctx, s.teamRepo, caller, teamID); err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListApplicationsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *RecruitmentService) ListMyApplications(ctx context.Context, caller domain.Identity) ([]domain.Application, error) {
	apps, err := s.appRepo.ListApplicationsByPlayer(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Approve accepts a pending application and takes one roster slot. If the
// ledger refuses the slot the application stays pending.
func (s *RecruitmentService) Approve(ctx context.Context, caller domain.Identity, applicationID string) (*domain.Application, error) {
	app, team, err := s.loadApplicationForCaptain(ctx, caller, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, fmt.Errorf("application is %s: %w", app.Status, my_errors.ErrInvalidTransition)
	}
	if !team.HasCapacity() {
		return nil, my_errors.ErrCapacityExceeded
	}

	accepted, team, err := s.appRepo.AcceptApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	slog.Info("application approved",
		"application_id", accepted.ID,
		"team_id", team.TeamID,
		"player_id", accepted.PlayerID,
		"roster", team.CurrentPlayerCount,
		"max_players", team.MaxPlayers,
	)
	return accepted, nil
}

func (s *RecruitmentService) Reject(ctx context.Context, caller domain.Identity, applicationID string) (*domain.Application, error) {
	app, _, err := s.loadApplicationForCaptain(ctx, caller, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, fmt.Errorf("application is %s: %w", app.Status, my_errors.ErrInvalidTransition)
	}

	return s.appRepo.TransitionApplication(ctx, applicationID, domain.ApplicationPending, domain.ApplicationRejected)
}

func (s *RecruitmentService) loadApplicationForCaptain(ctx context.Context, caller domain.Identity, applicationID string) (*domain.Application, *domain.Team, error) {
	app, err := s.appRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}

	team, err := s.teamRepo.GetTeamByID(ctx, app.TeamID)
	if err != nil {
		return nil, nil, err
	}
	if team.CaptainID != caller.UserID {
		return nil, nil, my_errors.ErrNotCaptain
	}
	return app, team, nil
}

// Invitations

func (s *RecruitmentService) Invite(ctx context.Context, caller domain.Identity, teamID, playerID string, message *string) (*domain.Invitation, error) {
	if playerID == "" {
		return nil, fmt.Errorf("player_id: %w", my_errors.ErrEmptyField)
	}

	team, err := requireCaptain(ctx, s.teamRepo, caller, teamID)
	if err != nil {
		return nil, err
	}
	if !team.HasCapacity() {
		return nil, my_errors.ErrTeamFull
	}
	if err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inv := &domain.Invitation{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		PlayerID:  playerID,
		InvitedBy: caller.UserID,
		Status:    domain.InvitationPending,
		Message:   trimMessage(message),
		ExpiresAt: now.Add(s.policy.InvitationTTL),
	}
	if err := s.invRepo.CreateInvitation(ctx, inv, now); err != nil {
		return nil, fmt.Errorf("failed to invite: %w", err)
	}
	return inv, nil
}

// Respond records the invitee's decision. A response at or after the deadline
// expires the invitation instead and fails with my_errors.ErrInvitationExpired.
func (s *RecruitmentService) Respond(ctx context.Context, caller domain.Identity, invitationID string, decision domain.InvitationDecision) (*domain.Invitation, error) {
	status, ok := decision.Status()
	if !ok {
		return nil, fmt.Errorf("decision %q: %w", decision, my_errors.ErrInvalidInput)
	}

	inv, err := s.invRepo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.PlayerID != caller.UserID {
		return nil, my_errors.ErrNotOwner
	}

	updated, err := s.invRepo.RespondToInvitation(ctx, invitationID, status, s.now().UTC())
	if err != nil {
		if errors.Is(err, my_errors.ErrInvitationExpired) {
			slog.Info("invitation expired on response", "invitation_id", invitationID, "player_id", caller.UserID)
		}
		return nil, err
	}
	return updated, nil
}

func (s *RecruitmentService) GetInvitation(ctx context.Context, caller domain.Identity, invitationID string) (*domain.Invitation, error) {
	inv, err := s.invRepo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if inv.PlayerID != caller.UserID {
		team, err := s.teamRepo.GetTeamByID(ctx, inv.TeamID)
		if err != nil {
			return nil, err
		}
		if team.CaptainID != caller.UserID {
			return nil, my_errors.ErrForbidden
		}
	}

	inv.Normalize(s.now().UTC())
	return inv, nil
}

// ListMyInvitations returns the caller's invitations that can still be answered.
func (s *RecruitmentService) ListMyInvitations(ctx context.Context, caller domain.Identity) ([]domain.Invitation, error) {
	invs, err := s.invRepo.ListInvitationsByPlayer(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	now := s.now().UTC()
	live := make([]domain.Invitation, 0, len(invs))
	for _, inv := range invs {
		if inv.IsLive(now) {
			live = append(live, inv)
		}
	}
	return live, nil
}

func (s *RecruitmentService) ListTeamInvitations(ctx context.Context, caller domain.Identity, teamID string) ([]domain.Invitation, error) {
	if _, err := requireCaptain(ctx, s.teamRepo, caller, teamID); err != nil {
		return nil, err
	}

	invs, err := s.invRepo.ListInvitationsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	now := s.now().UTC()
	for i := range invs {
		invs[i].Normalize(now)
	}
	return invs, nil
}

// Swipes

func (s *RecruitmentService) SwipeApplication(ctx context.Context, caller domain.Identity, teamID string) (*domain.ApplicationSwipe, error) {
	if !caller.HasRole(domain.RolePlayer) {
		return nil, fmt.Errorf("only players can swipe on teams: %w", my_errors.ErrWrongRole)
	}
	if teamID == "" {
		return nil, fmt.Errorf("team_id: %w", my_errors.ErrEmptyField)
	}

	if _, err := s.teamRepo.GetTeamByID(ctx, teamID); err != nil {
		return nil, err
	}

	result, err := s.matcher.SwipeApplication(ctx, teamID, caller.UserID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if result.Matched {
		slog.Info("match detected", "team_id", teamID, "player_id", caller.UserID, "via", "application")
	}
	return result, nil
}

func (s *RecruitmentService) SwipeInvite(ctx context.Context, caller domain.Identity, playerID string) (*domain.InvitationSwipe, error) {
	if !caller.HasRole(domain.RoleCaptain) {
		return nil, fmt.Errorf("only captains can swipe on players: %w", my_errors.ErrWrongRole)
	}
	if playerID == "" {
		return nil, fmt.Errorf("player_id: %w", my_errors.ErrEmptyField)
	}

	team, err := s.teamRepo.GetTeamByCaptain(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, my_errors.ErrTeamNotFound) {
			return nil, my_errors.ErrNoTeam
		}
		return nil, err
	}
	if err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	result, err := s.matcher.SwipeInvitation(ctx, team.TeamID, playerID, caller.UserID, now.Add(s.policy.SwipeInvitationTTL), now)
	if err != nil {
		return nil, err
	}
	if result.Matched {
		slog.Info("match detected", "team_id", team.TeamID, "player_id", playerID, "via", "invitation")
	}
	return result, nil
}

// requirePlayer resolves playerID to a directory user holding the player role.
func (s *RecruitmentService) requirePlayer(ctx context.Context, playerID string) error {
	user, err := s.userRepo.GetUserByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, my_errors.ErrNotFound) {
			return my_errors.ErrPlayerNotFound
		}
		return err
	}
	if !user.HasRole(domain.RolePlayer) {
		return my_errors.ErrPlayerNotFound
	}
	return nil
}

func trimMessage(message *string) *string {
	if message == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*message)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
