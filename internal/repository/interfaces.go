package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// PgxPool abstracts the pgx connection pool so repositories can run
// against *pgxpool.Pool in production and pgxmock in tests.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NarrativeRepositoryInterface defines operations for narrative entry data access
type NarrativeRepositoryInterface interface {
	Create(ctx context.Context, entry *domain.NarrativeEntry) error
	ListByMission(ctx context.Context, missionID uuid.UUID, limit int) ([]domain.NarrativeEntry, error)
	CountByTopic(ctx context.Context, missionID uuid.UUID) ([]domain.TopicCount, error)
}

// MissionRepositoryInterface defines operations for mission data access
type MissionRepositoryInterface interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
