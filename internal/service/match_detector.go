package service

import (
	"context"
	"fmt"
	"time"

	"recruitment-service/internal/domain"

	"github.com/google/uuid"
)

// MatchDetector creates swipe proposals and reports whether the complementary
// proposal is already pending for the same (team, player) pair. It never
// touches the complementary proposal.
type MatchDetector struct {
	appRepo ApplicationRepository
	invRepo InvitationRepository
}

func NewMatchDetector(appRepo ApplicationRepository, invRepo InvitationRepository) *MatchDetector {
	return &MatchDetector{
		appRepo: appRepo,
		invRepo: invRepo,
	}
}

// SwipeApplication ensures the pair has an application and checks for a live
// pending invitation. An existing application is left as is, whatever its status.
func (d *MatchDetector) SwipeApplication(ctx context.Context, teamID, playerID string, now time.Time) (*domain.ApplicationSwipe, error) {
	app, created, err := d.appRepo.EnsureApplication(ctx, &domain.Application{
		ID:       uuid.NewString(),
		TeamID:   teamID,
		PlayerID: playerID,
		Status:   domain.ApplicationPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure application: %w", err)
	}

	matched, err := d.invRepo.HasLivePendingInvitation(ctx, teamID, playerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}

	return &domain.ApplicationSwipe{Application: app, Matched: matched, Created: created}, nil
}

// SwipeInvitation ensures the pair has an invitation and checks for a pending
// application. An existing invitation is left as is, whatever its status.
func (d *MatchDetector) SwipeInvitation(ctx context.Context, teamID, playerID, captainID string, expiresAt, now time.Time) (*domain.InvitationSwipe, error) {
	inv, created, err := d.invRepo.EnsureInvitation(ctx, &domain.Invitation{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		PlayerID:  playerID,
		InvitedBy: captainID,
		Status:    domain.InvitationPending,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure invitation: %w", err)
	}
	inv.Normalize(now)

	matched, err := d.appRepo.HasPendingApplication(ctx, teamID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}

	return &domain.InvitationSwipe{Invitation: inv, Matched: matched, Created: created}, nil
}
