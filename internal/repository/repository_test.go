package repository

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/my_errors"
	"recruitment-service/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPool connects to the database described by .env.tests (or the process
// environment) and skips the test when none is reachable.
func setupPool(t testing.TB) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	if os.Getenv("JWT_SECRET") == "" {
		t.Setenv("JWT_SECRET", "integration-tests")
	}
	cfg, err := config.Load(".env.tests")
	if err != nil || cfg.StorageDriver != config.StorageDriverPostgres {
		t.Skipf("postgres not configured: %v", err)
	}

	pool, err := config.MustInitDB(ctx, *cfg)
	if err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}
	require.NoError(t, config.Migrate(ctx, pool))

	cleanupDB(t, pool)
	t.Cleanup(func() {
		cleanupDB(nil, pool)
		pool.Close()
	})
	return pool
}

func cleanupDB(t testing.TB, pool *pgxpool.Pool) {
	ctx := context.Background()
	queries := []string{
		"TRUNCATE TABLE team_applications CASCADE",
		"TRUNCATE TABLE team_invitations CASCADE",
		"TRUNCATE TABLE teams CASCADE",
		"TRUNCATE TABLE users CASCADE",
	}

	for _, query := range queries {
		_, err := pool.Exec(ctx, query)
		if t != nil {
			require.NoError(t, err)
		}
	}
}

func createTeam(t testing.TB, repo *TeamRepository, maxPlayers int) *domain.Team {
	t.Helper()
	team := &domain.Team{
		TeamID:     uuid.NewString(),
		Name:       "Riverside CC",
		CaptainID:  "cap-1",
		MaxPlayers: maxPlayers,
	}
	require.NoError(t, repo.CreateTeam(context.Background(), team))
	return team
}

func createApplications(t testing.TB, repo *ApplicationRepository, teamID string, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		app := &domain.Application{
			ID:       uuid.NewString(),
			TeamID:   teamID,
			PlayerID: fmt.Sprintf("player-%03d", i),
			Status:   domain.ApplicationPending,
		}
		require.NoError(t, repo.CreateApplication(context.Background(), app))
		ids[i] = app.ID
	}
	return ids
}

func TestTeamRepository_CRUD(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := NewTeamRepository(pool)

	team := createTeam(t, repo, 11)
	assert.False(t, team.CreatedAt.IsZero())

	loaded, err := repo.GetTeamByID(ctx, team.TeamID)
	require.NoError(t, err)
	assert.Equal(t, "Riverside CC", loaded.Name)
	assert.Empty(t, loaded.PreferredFormats)

	byCaptain, err := repo.GetTeamByCaptain(ctx, "cap-1")
	require.NoError(t, err)
	assert.Equal(t, team.TeamID, byCaptain.TeamID)

	city := "Leeds"
	updated, err := repo.UpdateTeam(ctx, team.TeamID, domain.TeamPatch{City: &city, PreferredFormats: []string{"T20", "ODI"}})
	require.NoError(t, err)
	assert.Equal(t, "Leeds", *updated.City)
	assert.Equal(t, []string{"T20", "ODI"}, updated.PreferredFormats)

	full, err := repo.SetSquadFull(ctx, team.TeamID, true)
	require.NoError(t, err)
	assert.True(t, full.IsSquadFull)

	_, err = repo.IncrementRoster(ctx, team.TeamID)
	assert.ErrorIs(t, err, my_errors.ErrCapacityExceeded)

	_, err = repo.GetTeamByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, my_errors.ErrTeamNotFound)
}

func TestApplicationRepository_ConcurrentAcceptRespectsCapacity(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	teams := NewTeamRepository(pool)
	apps := NewApplicationRepository(pool)

	const slots, applicants = 3, 15
	team := createTeam(t, teams, slots)
	ids := createApplications(t, apps, team.TeamID, applicants)

	var accepted atomic.Int32
	var wg conc.WaitGroup
	for _, id := range ids {
		wg.Go(func() {
			_, _, err := apps.AcceptApplication(ctx, id)
			if err == nil {
				accepted.Add(1)
				return
			}
			assert.ErrorIs(t, err, my_errors.ErrCapacityExceeded)
		})
	}
	wg.Wait()

	assert.EqualValues(t, slots, accepted.Load())

	loaded, err := teams.GetTeamByID(ctx, team.TeamID)
	require.NoError(t, err)
	assert.Equal(t, slots, loaded.CurrentPlayerCount)
	assert.True(t, loaded.IsSquadFull)

	listed, err := apps.ListApplicationsByTeam(ctx, team.TeamID)
	require.NoError(t, err)
	var stillPending int
	for _, app := range listed {
		if app.Status == domain.ApplicationPending {
			stillPending++
		}
	}
	assert.Equal(t, applicants-slots, stillPending, "refused approvals roll back the status change")
}

func TestApplicationRepository_ConcurrentCreateSinglePending(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	team := createTeam(t, NewTeamRepository(pool), 11)
	apps := NewApplicationRepository(pool)

	var created atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Go(func() {
			err := apps.CreateApplication(ctx, &domain.Application{
				ID:       uuid.NewString(),
				TeamID:   team.TeamID,
				PlayerID: "p1",
				Status:   domain.ApplicationPending,
			})
			if err == nil {
				created.Add(1)
				return
			}
			assert.ErrorIs(t, err, my_errors.ErrDuplicateProposal)
		})
	}
	wg.Wait()

	assert.EqualValues(t, 1, created.Load())

	pending, err := apps.HasPendingApplication(ctx, team.TeamID, "p1")
	require.NoError(t, err)
	assert.True(t, pending)
}

func TestApplicationRepository_ConcurrentEnsureSingleRecord(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	team := createTeam(t, NewTeamRepository(pool), 11)
	apps := NewApplicationRepository(pool)

	const callers = 10
	ids := make([]string, callers)
	var created atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Go(func() {
			stored, isNew, err := apps.EnsureApplication(ctx, &domain.Application{
				ID:       uuid.NewString(),
				TeamID:   team.TeamID,
				PlayerID: "p1",
				Status:   domain.ApplicationPending,
			})
			if !assert.NoError(t, err) {
				return
			}
			ids[i] = stored.ID
			if isNew {
				created.Add(1)
			}
		})
	}
	wg.Wait()

	assert.EqualValues(t, 1, created.Load())

	listed, err := apps.ListApplicationsByTeam(ctx, team.TeamID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	for _, id := range ids {
		assert.Equal(t, listed[0].ID, id)
	}
}

func TestInvitationRepository_ConcurrentEnsureSingleRecord(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	team := createTeam(t, NewTeamRepository(pool), 11)
	invs := NewInvitationRepository(pool)
	expiresAt := time.Now().UTC().Add(time.Hour)

	const callers = 10
	ids := make([]string, callers)
	var created atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Go(func() {
			stored, isNew, err := invs.EnsureInvitation(ctx, &domain.Invitation{
				ID:        uuid.NewString(),
				TeamID:    team.TeamID,
				PlayerID:  "p1",
				InvitedBy: team.CaptainID,
				Status:    domain.InvitationPending,
				ExpiresAt: expiresAt,
			})
			if !assert.NoError(t, err) {
				return
			}
			ids[i] = stored.ID
			if isNew {
				created.Add(1)
			}
		})
	}
	wg.Wait()

	assert.EqualValues(t, 1, created.Load())

	listed, err := invs.ListInvitationsByTeam(ctx, team.TeamID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	for _, id := range ids {
		assert.Equal(t, listed[0].ID, id)
	}
}

func TestApplicationRepository_EnsureAndTransition(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	team := createTeam(t, NewTeamRepository(pool), 11)
	apps := NewApplicationRepository(pool)

	first, created, err := apps.EnsureApplication(ctx, &domain.Application{
		ID: uuid.NewString(), TeamID: team.TeamID, PlayerID: "p1", Status: domain.ApplicationPending,
	})
	require.NoError(t, err)
	assert.True(t, created)

	withdrawn, err := apps.TransitionApplication(ctx, first.ID, domain.ApplicationPending, domain.ApplicationWithdrawn)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationWithdrawn, withdrawn.Status)

	again, created, err := apps.EnsureApplication(ctx, &domain.Application{
		ID: uuid.NewString(), TeamID: team.TeamID, PlayerID: "p1", Status: domain.ApplicationPending,
	})
	require.NoError(t, err)
	assert.False(t, created, "a swipe never reopens a closed application")
	assert.Equal(t, first.ID, again.ID)

	_, err = apps.TransitionApplication(ctx, first.ID, domain.ApplicationPending, domain.ApplicationRejected)
	assert.ErrorIs(t, err, my_errors.ErrInvalidTransition)

	_, err = apps.TransitionApplication(ctx, uuid.NewString(), domain.ApplicationPending, domain.ApplicationRejected)
	assert.ErrorIs(t, err, my_errors.ErrApplicationNotFound)
}

func TestInvitationRepository_ExpiryAndResponse(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	team := createTeam(t, NewTeamRepository(pool), 11)
	invs := NewInvitationRepository(pool)
	now := time.Now().UTC()

	lapsed := &domain.Invitation{
		ID: uuid.NewString(), TeamID: team.TeamID, PlayerID: "p1", InvitedBy: "cap-1",
		Status: domain.InvitationPending, ExpiresAt: now.Add(-time.Second),
	}
	require.NoError(t, invs.CreateInvitation(ctx, lapsed, now.Add(-time.Hour)))

	live, err := invs.HasLivePendingInvitation(ctx, team.TeamID, "p1", now)
	require.NoError(t, err)
	assert.False(t, live)

	inv, err := invs.RespondToInvitation(ctx, lapsed.ID, domain.InvitationAccepted, now)
	assert.ErrorIs(t, err, my_errors.ErrInvitationExpired)
	require.NotNil(t, inv)
	assert.Equal(t, domain.InvitationExpired, inv.Status)

	fresh := &domain.Invitation{
		ID: uuid.NewString(), TeamID: team.TeamID, PlayerID: "p1", InvitedBy: "cap-1",
		Status: domain.InvitationPending, ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, invs.CreateInvitation(ctx, fresh, now))

	dup := *fresh
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, invs.CreateInvitation(ctx, &dup, now), my_errors.ErrDuplicateProposal)

	accepted, err := invs.RespondToInvitation(ctx, fresh.ID, domain.InvitationAccepted, now)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, accepted.Status)

	_, err = invs.RespondToInvitation(ctx, fresh.ID, domain.InvitationDeclined, now)
	assert.ErrorIs(t, err, my_errors.ErrInvalidTransition)

	listed, err := invs.ListInvitationsByPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func BenchmarkAcceptApplication(b *testing.B) {
	pool := setupPool(b)
	ctx := context.Background()
	teams := NewTeamRepository(pool)
	apps := NewApplicationRepository(pool)

	team := createTeam(b, teams, b.N+1)
	ids := createApplications(b, apps, team.TeamID, b.N)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := apps.AcceptApplication(ctx, ids[i]); err != nil {
			b.Fatal(err)
		}
	}
}

func TestUserRepository_Upsert(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	user := &domain.User{UserID: "p1", FullName: "Ada", Roles: []domain.Role{domain.RolePlayer}, IsActive: true}
	require.NoError(t, repo.CreateOrUpdateUser(ctx, user))

	user.FullName = "Ada L."
	user.Roles = append(user.Roles, domain.RoleCaptain)
	require.NoError(t, repo.CreateOrUpdateUser(ctx, user))

	loaded, err := repo.GetUserByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", loaded.FullName)
	assert.True(t, loaded.HasRole(domain.RoleCaptain))

	_, err = repo.GetUserByID(ctx, "ghost")
	assert.ErrorIs(t, err, my_errors.ErrUserNotFound)
}
