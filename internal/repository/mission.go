package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type MissionRepository struct {
	pool PgxPool
}

func NewMissionRepository(pool PgxPool) *MissionRepository {
	return &MissionRepository{pool: pool}
}

// Exists reports whether a mission with the given id is registered.
func (r *MissionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM missions WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check mission exists: %w", err)
	}

	return exists, nil
}
