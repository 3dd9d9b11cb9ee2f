// Command seed fills the configured storage with a demo captain, team and
// players, and prints bearer tokens for each of them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/jwt"
	"recruitment-service/internal/repository"
	"recruitment-service/internal/service"
	"recruitment-service/pkg/config"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
)

func main() {
	players := flag.Int("players", 5, "number of demo players")
	maxPlayers := flag.Int("max-players", 11, "team roster ceiling")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of printed tokens")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, *players, *maxPlayers, *tokenTTL); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, players, maxPlayers int, tokenTTL time.Duration) error {
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	users := service.NewUserService(store.Users)
	teams := service.NewTeamService(store.Teams, cfg.DefaultMaxPlayers)
	recruitment := service.NewRecruitmentService(store.Teams, store.Applications, store.Invitations, store.Users,
		service.RecruitmentPolicy{
			InvitationTTL:      cfg.InvitationTTL,
			SwipeInvitationTTL: cfg.SwipeInvitationTTL,
		})

	captain := domain.Identity{UserID: "captain-" + uuid.NewString()[:8], Roles: []domain.Role{domain.RoleCaptain}}
	if _, err := users.RegisterSelf(ctx, captain, "Demo Captain"); err != nil {
		return err
	}

	team, err := teams.CreateTeam(ctx, captain, &domain.Team{Name: "Demo XI", MaxPlayers: maxPlayers})
	if err != nil {
		return err
	}
	printToken(cfg, captain, tokenTTL)
	fmt.Printf("team %s (%d/%d)\n", team.TeamID, team.CurrentPlayerCount, team.MaxPlayers)

	identities := make([]domain.Identity, players)
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(4)
	for i := range identities {
		identities[i] = domain.Identity{UserID: fmt.Sprintf("player-%02d-%s", i+1, uuid.NewString()[:8]), Roles: []domain.Role{domain.RolePlayer}}
		player := identities[i]
		name := fmt.Sprintf("Demo Player %d", i+1)
		p.Go(func(ctx context.Context) error {
			_, err := users.RegisterSelf(ctx, player, name)
			return err
		})
	}
	if err := p.Wait(); err != nil {
		return fmt.Errorf("failed to register players: %w", err)
	}

	// Odd players apply, even players are invited, so both queues have data.
	for i, player := range identities {
		printToken(cfg, player, tokenTTL)
		if i%2 == 0 {
			if _, err := recruitment.Apply(ctx, player, team.TeamID, nil); err != nil {
				return err
			}
			continue
		}
		if _, err := recruitment.Invite(ctx, captain, team.TeamID, player.UserID, nil); err != nil {
			return err
		}
	}

	slog.Info("seed complete", "team_id", team.TeamID, "players", players, "storage", cfg.StorageDriver)
	return nil
}

func printToken(cfg *config.Config, identity domain.Identity, ttl time.Duration) {
	roles := make([]string, 0, len(identity.Roles))
	for _, role := range identity.Roles {
		roles = append(roles, string(role))
	}
	token, err := jwt.GenerateToken(identity.UserID, roles, cfg.JWTSecret, ttl)
	if err != nil {
		slog.Error("failed to sign token", "user_id", identity.UserID, "error", err)
		return
	}
	fmt.Printf("%s\t%v\t%s\n", identity.UserID, roles, token)
}
