package memory

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/my_errors"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTeam(t *testing.T, s *Store, maxPlayers int) *domain.Team {
	t.Helper()
	team := &domain.Team{TeamID: "team-1", Name: "Riverside", CaptainID: "cap-1", MaxPlayers: maxPlayers}
	require.NoError(t, s.CreateTeam(context.Background(), team))
	return team
}

func seedApplications(t *testing.T, s *Store, teamID string, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("app-%d", i)
		require.NoError(t, s.CreateApplication(context.Background(), &domain.Application{
			ID:       ids[i],
			TeamID:   teamID,
			PlayerID: fmt.Sprintf("player-%d", i),
			Status:   domain.ApplicationPending,
		}))
	}
	return ids
}

func TestStore_AcceptApplication_ConcurrentRespectsCapacity(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	team := seedTeam(t, s, 3)
	ids := seedApplications(t, s, team.TeamID, 10)

	var accepted, refused atomic.Int32
	var wg conc.WaitGroup
	for _, id := range ids {
		wg.Go(func() {
			_, _, err := s.AcceptApplication(ctx, id)
			switch {
			case err == nil:
				accepted.Add(1)
			case assert.ErrorIs(t, err, my_errors.ErrCapacityExceeded):
				refused.Add(1)
			}
		})
	}
	wg.Wait()

	assert.EqualValues(t, 3, accepted.Load())
	assert.EqualValues(t, 7, refused.Load())

	stored, err := s.GetTeamByID(ctx, team.TeamID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.CurrentPlayerCount)
	assert.True(t, stored.IsSquadFull)

	apps, err := s.ListApplicationsByTeam(ctx, team.TeamID)
	require.NoError(t, err)
	var pending int
	for _, app := range apps {
		if app.Status == domain.ApplicationPending {
			pending++
		}
	}
	assert.Equal(t, 7, pending, "refused applications stay pending")
}

func TestStore_AcceptApplication_NotPending(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	team := seedTeam(t, s, 5)
	ids := seedApplications(t, s, team.TeamID, 1)

	_, err := s.TransitionApplication(ctx, ids[0], domain.ApplicationPending, domain.ApplicationRejected)
	require.NoError(t, err)

	_, _, err = s.AcceptApplication(ctx, ids[0])
	assert.ErrorIs(t, err, my_errors.ErrInvalidTransition)

	stored, err := s.GetTeamByID(ctx, team.TeamID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CurrentPlayerCount)
}

func TestStore_CreateApplication_DuplicatePending(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	team := seedTeam(t, s, 5)
	seedApplications(t, s, team.TeamID, 1)

	err := s.CreateApplication(ctx, &domain.Application{
		ID: "app-dup", TeamID: team.TeamID, PlayerID: "player-0", Status: domain.ApplicationPending,
	})
	assert.ErrorIs(t, err, my_errors.ErrDuplicateProposal)

	_, err = s.TransitionApplication(ctx, "app-0", domain.ApplicationPending, domain.ApplicationWithdrawn)
	require.NoError(t, err)

	err = s.CreateApplication(ctx, &domain.Application{
		ID: "app-again", TeamID: team.TeamID, PlayerID: "player-0", Status: domain.ApplicationPending,
	})
	assert.NoError(t, err, "a new application is allowed once the old one is closed")
}

func TestStore_EnsureApplication_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	first, created, err := s.EnsureApplication(ctx, &domain.Application{
		ID: "a1", TeamID: "t1", PlayerID: "p1", Status: domain.ApplicationPending,
	})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := s.EnsureApplication(ctx, &domain.Application{
		ID: "a2", TeamID: "t1", PlayerID: "p1", Status: domain.ApplicationPending,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	apps, err := s.ListApplicationsByPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestStore_Ensure_ConcurrentSingleRecord(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	team := seedTeam(t, s, 11)
	expiresAt := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	const callers = 20
	var appsCreated, invsCreated atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Go(func() {
			_, created, err := s.EnsureApplication(ctx, &domain.Application{
				ID:       fmt.Sprintf("app-%d", i),
				TeamID:   team.TeamID,
				PlayerID: "player-1",
				Status:   domain.ApplicationPending,
			})
			if assert.NoError(t, err) && created {
				appsCreated.Add(1)
			}
		})
		wg.Go(func() {
			_, created, err := s.EnsureInvitation(ctx, &domain.Invitation{
				ID:        fmt.Sprintf("inv-%d", i),
				TeamID:    team.TeamID,
				PlayerID:  "player-1",
				InvitedBy: team.CaptainID,
				Status:    domain.InvitationPending,
				ExpiresAt: expiresAt,
			})
			if assert.NoError(t, err) && created {
				invsCreated.Add(1)
			}
		})
	}
	wg.Wait()

	assert.EqualValues(t, 1, appsCreated.Load())
	assert.EqualValues(t, 1, invsCreated.Load())

	apps, err := s.ListApplicationsByPlayer(ctx, "player-1")
	require.NoError(t, err)
	assert.Len(t, apps, 1)
	invs, err := s.ListInvitationsByPlayer(ctx, "player-1")
	require.NoError(t, err)
	assert.Len(t, invs, 1)
}

func TestStore_RespondToInvitation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newInvitation := func(s *Store, id string, expiresAt time.Time) {
		require.NoError(t, s.CreateInvitation(ctx, &domain.Invitation{
			ID: id, TeamID: "t1", PlayerID: "p-" + id, InvitedBy: "cap-1",
			Status: domain.InvitationPending, ExpiresAt: expiresAt,
		}, now))
	}

	t.Run("accept before deadline", func(t *testing.T) {
		s := NewStore()
		newInvitation(s, "i1", now.Add(time.Hour))

		inv, err := s.RespondToInvitation(ctx, "i1", domain.InvitationAccepted, now)
		require.NoError(t, err)
		assert.Equal(t, domain.InvitationAccepted, inv.Status)

		_, err = s.RespondToInvitation(ctx, "i1", domain.InvitationDeclined, now)
		assert.ErrorIs(t, err, my_errors.ErrInvalidTransition)
	})

	t.Run("lapsed invitation is expired instead", func(t *testing.T) {
		s := NewStore()
		newInvitation(s, "i2", now.Add(-time.Second))

		inv, err := s.RespondToInvitation(ctx, "i2", domain.InvitationAccepted, now)
		assert.ErrorIs(t, err, my_errors.ErrInvitationExpired)
		require.NotNil(t, inv)
		assert.Equal(t, domain.InvitationExpired, inv.Status)

		stored, err := s.GetInvitationByID(ctx, "i2")
		require.NoError(t, err)
		assert.Equal(t, domain.InvitationExpired, stored.Status)

		_, err = s.RespondToInvitation(ctx, "i2", domain.InvitationDeclined, now)
		assert.ErrorIs(t, err, my_errors.ErrInvitationExpired)
	})

	t.Run("missing invitation", func(t *testing.T) {
		_, err := NewStore().RespondToInvitation(ctx, "nope", domain.InvitationAccepted, now)
		assert.ErrorIs(t, err, my_errors.ErrNotFound)
	})
}

func TestStore_CreateInvitation_ExpiresLapsedPending(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore()

	require.NoError(t, s.CreateInvitation(ctx, &domain.Invitation{
		ID: "old", TeamID: "t1", PlayerID: "p1", Status: domain.InvitationPending, ExpiresAt: now.Add(time.Hour),
	}, now))

	err := s.CreateInvitation(ctx, &domain.Invitation{
		ID: "dup", TeamID: "t1", PlayerID: "p1", Status: domain.InvitationPending, ExpiresAt: now.Add(2 * time.Hour),
	}, now)
	assert.ErrorIs(t, err, my_errors.ErrDuplicateProposal)

	later := now.Add(2 * time.Hour)
	require.NoError(t, s.CreateInvitation(ctx, &domain.Invitation{
		ID: "new", TeamID: "t1", PlayerID: "p1", Status: domain.InvitationPending, ExpiresAt: later.Add(time.Hour),
	}, later))

	old, err := s.GetInvitationByID(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationExpired, old.Status)

	live, err := s.HasLivePendingInvitation(ctx, "t1", "p1", later)
	require.NoError(t, err)
	assert.True(t, live)
}

func TestStore_UpdateTeam(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	team := seedTeam(t, s, 5)
	ids := seedApplications(t, s, team.TeamID, 2)
	for _, id := range ids {
		_, _, err := s.AcceptApplication(ctx, id)
		require.NoError(t, err)
	}

	below := 1
	_, err := s.UpdateTeam(ctx, team.TeamID, domain.TeamPatch{MaxPlayers: &below})
	assert.ErrorIs(t, err, my_errors.ErrMaxBelowRosterSize)

	equal := 2
	updated, err := s.UpdateTeam(ctx, team.TeamID, domain.TeamPatch{MaxPlayers: &equal})
	require.NoError(t, err)
	assert.True(t, updated.IsSquadFull)

	_, err = s.IncrementRoster(ctx, team.TeamID)
	assert.ErrorIs(t, err, my_errors.ErrCapacityExceeded)

	_, err = s.IncrementRoster(ctx, "missing")
	assert.ErrorIs(t, err, my_errors.ErrTeamNotFound)
}

func TestStore_GetTeamByCaptain_Oldest(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	require.NoError(t, s.CreateTeam(ctx, &domain.Team{TeamID: "b", CaptainID: "cap", MaxPlayers: 5}))
	require.NoError(t, s.CreateTeam(ctx, &domain.Team{TeamID: "a", CaptainID: "cap", MaxPlayers: 5}))

	team, err := s.GetTeamByCaptain(ctx, "cap")
	require.NoError(t, err)
	assert.Equal(t, "b", team.TeamID)

	_, err = s.GetTeamByCaptain(ctx, "nobody")
	assert.ErrorIs(t, err, my_errors.ErrTeamNotFound)
}
