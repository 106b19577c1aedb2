//go:build integration

package database_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/saturnino-fabrica-de-software/vigia/internal/database"
)

func setupMigrateTest(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "vigia_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/vigia_test?sslmode=disable", host, port.Port())

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(pingCtx))

	cleanup := func() {
		_ = db.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

func TestMigratorIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupMigrateTest(t)
	defer cleanup()

	t.Run("Up runs migrations successfully", func(t *testing.T) {
		migrator, err := database.NewMigrator(db, "vigia_test")
		require.NoError(t, err)
		defer func() { _ = migrator.Close() }()

		err = migrator.Up()
		require.NoError(t, err)

		for _, table := range []string{"missions", "personnel", "tasks", "teams", "sorties", "narrative_entries"} {
			assertTableExists(t, db, table)
		}
	})

	t.Run("Version returns current version", func(t *testing.T) {
		migrator, err := database.NewMigrator(db, "vigia_test")
		require.NoError(t, err)
		defer func() { _ = migrator.Close() }()

		version, dirty, err := migrator.Version()
		require.NoError(t, err)
		assert.False(t, dirty, "migration should not be dirty")
		assert.Equal(t, uint(1), version, "should be at version 1")
	})

	t.Run("Up is idempotent", func(t *testing.T) {
		migrator, err := database.NewMigrator(db, "vigia_test")
		require.NoError(t, err)
		defer func() { _ = migrator.Close() }()

		require.NoError(t, migrator.Up())
	})

	t.Run("Schema validation after migration", func(t *testing.T) {
		t.Run("teams table has readiness columns", func(t *testing.T) {
			columns := getTableColumns(t, db, "teams")
			expectedColumns := []string{
				"id", "mission_id", "name", "status", "emergency_flag",
				"needs_assistance_flag", "last_checkin_at", "status_updated_at",
				"current_task_id",
			}
			for _, col := range expectedColumns {
				assert.Contains(t, columns, col, "teams should have column %s", col)
			}
		})

		t.Run("narrative_entries table has timeline columns", func(t *testing.T) {
			columns := getTableColumns(t, db, "narrative_entries")
			expectedColumns := []string{
				"id", "mission_id", "timestamp_utc", "source_topic", "text", "created_at",
			}
			for _, col := range expectedColumns {
				assert.Contains(t, columns, col, "narrative_entries should have column %s", col)
			}
		})

		t.Run("indexes are created", func(t *testing.T) {
			indexes := getTableIndexes(t, db, "narrative_entries")
			assert.Contains(t, indexes, "idx_narrative_entries_mission_time")

			teamIndexes := getTableIndexes(t, db, "teams")
			assert.Contains(t, teamIndexes, "idx_teams_mission")

			sortieIndexes := getTableIndexes(t, db, "sorties")
			assert.Contains(t, sortieIndexes, "idx_sorties_task_active")
		})
	})

	t.Run("Data insertion works", func(t *testing.T) {
		var missionID string
		err := db.QueryRow(`
			INSERT INTO missions (name)
			VALUES ($1)
			RETURNING id
		`, "Ridge Sweep 2026-07").Scan(&missionID)
		require.NoError(t, err)
		assert.NotEmpty(t, missionID)

		var entryID string
		err = db.QueryRow(`
			INSERT INTO narrative_entries (mission_id, timestamp_utc, source_topic, text)
			VALUES ($1, NOW(), $2, $3)
			RETURNING id
		`, missionID, "personnel.checkin", "Team Alpha checked in via radio").Scan(&entryID)
		require.NoError(t, err)
		assert.NotEmpty(t, entryID)

		// Entries must not outlive their mission
		_, err = db.Exec("DELETE FROM missions WHERE id = $1", missionID)
		require.NoError(t, err)

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM narrative_entries WHERE id = $1", entryID).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 0, count, "narrative entries should be deleted via CASCADE")
	})

	t.Run("Down rolls back the schema", func(t *testing.T) {
		migrator, err := database.NewMigrator(db, "vigia_test")
		require.NoError(t, err)
		defer func() { _ = migrator.Close() }()

		require.NoError(t, migrator.Down())

		var exists bool
		err = db.QueryRow(`
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public'
				AND table_name = 'narrative_entries'
			)
		`).Scan(&exists)
		require.NoError(t, err)
		assert.False(t, exists, "narrative_entries should be dropped")
	})
}

// Helper functions

func assertTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`, tableName).Scan(&exists)

	require.NoError(t, err)
	assert.True(t, exists, "table %s should exist", tableName)
}

func getTableColumns(t *testing.T, db *sql.DB, tableName string) []string {
	t.Helper()

	rows, err := db.Query(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'public'
		AND table_name = $1
		ORDER BY ordinal_position
	`, tableName)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var col string
		require.NoError(t, rows.Scan(&col))
		columns = append(columns, col)
	}

	return columns
}

func getTableIndexes(t *testing.T, db *sql.DB, tableName string) []string {
	t.Helper()

	rows, err := db.Query(`
		SELECT indexname
		FROM pg_indexes
		WHERE schemaname = 'public'
		AND tablename = $1
	`, tableName)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var indexes []string
	for rows.Next() {
		var idx string
		require.NoError(t, rows.Scan(&idx))
		indexes = append(indexes, idx)
	}

	return indexes
}
