package service

import (
	"context"
	"time"

	"recruitment-service/internal/domain"
)

type UserRepository interface {
	CreateOrUpdateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// TeamRepository is the team store. Roster slots are only taken through
// ApplicationRepository.AcceptApplication.
type TeamRepository interface {
	CreateTeam(ctx context.Context, team *domain.Team) error
	GetTeamByID(ctx context.Context, teamID string) (*domain.Team, error)
	GetTeamByCaptain(ctx context.Context, captainID string) (*domain.Team, error)
	UpdateTeam(ctx context.Context, teamID string, patch domain.TeamPatch) (*domain.Team, error)
	SetSquadFull(ctx context.Context, teamID string, isFull bool) (*domain.Team, error)
}

type ApplicationRepository interface {
	// CreateApplication inserts app unless a pending application exists for the pair.
	CreateApplication(ctx context.Context, app *domain.Application) error
	// EnsureApplication inserts app only when the pair has no application at all,
	// returning the stored record and whether it was created.
	EnsureApplication(ctx context.Context, app *domain.Application) (*domain.Application, bool, error)
	GetApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error)
	ListApplicationsByTeam(ctx context.Context, teamID string) ([]domain.Application, error)
	ListApplicationsByPlayer(ctx context.Context, playerID string) ([]domain.Application, error)
	HasPendingApplication(ctx context.Context, teamID, playerID string) (bool, error)
	// TransitionApplication is a compare-and-set from one status to another.
	TransitionApplication(ctx context.Context, applicationID string, from, to domain.ApplicationStatus) (*domain.Application, error)
	// AcceptApplication moves a pending application to accepted and increments
	// the team roster as one atomic unit.
	AcceptApplication(ctx context.Context, applicationID string) (*domain.Application, *domain.Team, error)
}

type InvitationRepository interface {
	// CreateInvitation inserts inv unless a live pending invitation exists for the pair.
	// Lapsed pending invitations for the pair are marked expired first.
	CreateInvitation(ctx context.Context, inv *domain.Invitation, now time.Time) error
	EnsureInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, bool, error)
	GetInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error)
	ListInvitationsByTeam(ctx context.Context, teamID string) ([]domain.Invitation, error)
	ListInvitationsByPlayer(ctx context.Context, playerID string) ([]domain.Invitation, error)
	HasLivePendingInvitation(ctx context.Context, teamID, playerID string, now time.Time) (bool, error)
	// RespondToInvitation moves a live pending invitation to status. A lapsed one is
	// written as expired and my_errors.ErrInvitationExpired is returned.
	RespondToInvitation(ctx context.Context, invitationID string, status domain.InvitationStatus, now time.Time) (*domain.Invitation, error)
}
