package repository

import (
	"context"
	"log/slog"

	"recruitment-service/internal/repository/memory"
	"recruitment-service/internal/service"
	"recruitment-service/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage bundles the repositories of one storage driver.
type Storage struct {
	Users        service.UserRepository
	Teams        service.TeamRepository
	Applications service.ApplicationRepository
	Invitations  service.InvitationRepository

	// Pool is nil for the memory driver.
	Pool *pgxpool.Pool
}

// Open connects the driver selected by cfg. Postgres schemas are migrated
// first when MigrateOnStart is set.
func Open(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &Storage{
			Users:        store,
			Teams:        store,
			Applications: store,
			Invitations:  store,
		}, nil
	}

	pool, err := config.MustInitDB(ctx, *cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("successfully connected to database")

	if cfg.MigrateOnStart {
		if err := config.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return NewPostgresStorage(pool), nil
}

func NewPostgresStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		Users:        NewUserRepository(pool),
		Teams:        NewTeamRepository(pool),
		Applications: NewApplicationRepository(pool),
		Invitations:  NewInvitationRepository(pool),
		Pool:         pool,
	}
}

func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
