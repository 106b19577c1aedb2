package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

type NarrativeRepository struct {
	pool PgxPool
}

func NewNarrativeRepository(pool PgxPool) *NarrativeRepository {
	return &NarrativeRepository{pool: pool}
}

// Create persists one narrative entry. The mission must already exist;
// a foreign key violation surfaces as domain.ErrMissionNotFound.
func (r *NarrativeRepository) Create(ctx context.Context, entry *domain.NarrativeEntry) error {
	query := `
		INSERT INTO narrative_entries (id, mission_id, timestamp_utc, source_topic, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.MissionID,
		entry.TimestampUTC,
		entry.SourceTopic,
		entry.Text,
	).Scan(&entry.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrMissionNotFound.WithError(err)
		}
		return fmt.Errorf("create narrative entry: %w", err)
	}

	return nil
}

// ListByMission returns the newest entries for a mission, most recent first.
func (r *NarrativeRepository) ListByMission(ctx context.Context, missionID uuid.UUID, limit int) ([]domain.NarrativeEntry, error) {
	query := `
		SELECT id, mission_id, timestamp_utc, source_topic, text, created_at
		FROM narrative_entries
		WHERE mission_id = $1
		ORDER BY timestamp_utc DESC, created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, missionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list narrative entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.NarrativeEntry
	for rows.Next() {
		var entry domain.NarrativeEntry
		err := rows.Scan(
			&entry.ID,
			&entry.MissionID,
			&entry.TimestampUTC,
			&entry.SourceTopic,
			&entry.Text,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan narrative entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list narrative entries: %w", err)
	}

	return entries, nil
}

// CountByTopic returns entry totals per source topic for a mission.
func (r *NarrativeRepository) CountByTopic(ctx context.Context, missionID uuid.UUID) ([]domain.TopicCount, error) {
	query := `
		SELECT source_topic, COUNT(*) AS total
		FROM narrative_entries
		WHERE mission_id = $1
		GROUP BY source_topic
		ORDER BY source_topic
	`

	rows, err := r.pool.Query(ctx, query, missionID)
	if err != nil {
		return nil, fmt.Errorf("count narrative entries: %w", err)
	}
	defer rows.Close()

	var counts []domain.TopicCount
	for rows.Next() {
		var c domain.TopicCount
		if err := rows.Scan(&c.SourceTopic, &c.Count); err != nil {
			return nil, fmt.Errorf("scan topic count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count narrative entries: %w", err)
	}

	return counts, nil
}
