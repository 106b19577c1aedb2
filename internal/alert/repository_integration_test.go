//go:build integration

package alert

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupIntegrationTest(t *testing.T) (string, func()) {
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

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/vigia_test?sslmode=disable", host, port.Port())

	conn, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, `
		CREATE TABLE missions (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE personnel (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE tasks (
			id UUID PRIMARY KEY,
			mission_id UUID NOT NULL REFERENCES missions(id),
			name VARCHAR(255) NOT NULL,
			lead_personnel_id UUID REFERENCES personnel(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE teams (
			id UUID PRIMARY KEY,
			mission_id UUID NOT NULL REFERENCES missions(id),
			name VARCHAR(255) NOT NULL,
			status VARCHAR(100) NOT NULL DEFAULT 'staged',
			emergency_flag BOOLEAN NOT NULL DEFAULT false,
			needs_assistance_flag BOOLEAN NOT NULL DEFAULT false,
			last_checkin_at TIMESTAMPTZ,
			status_updated_at TIMESTAMPTZ,
			current_task_id UUID REFERENCES tasks(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE sorties (
			id UUID PRIMARY KEY,
			task_id UUID NOT NULL REFERENCES tasks(id),
			is_active BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	require.NoError(t, err)

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return connStr, cleanup
}

func TestFetchTeamAssignments_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	connStr, cleanup := setupIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)
	defer conn.Close(ctx)

	missionID := uuid.New()
	leadID := uuid.New()
	taskID := uuid.New()
	alphaID := uuid.New()
	bravoID := uuid.New()
	activeSortieID := uuid.New()
	staleSortieID := uuid.New()

	checkin := time.Now().UTC().Add(-20 * time.Minute).Truncate(time.Second)
	statusChanged := time.Now().UTC().Add(-5 * time.Minute).Truncate(time.Second)

	_, err = conn.Exec(ctx, `INSERT INTO missions (id, name) VALUES ($1, $2)`,
		missionID, "Ridge Sweep 2026-07")
	require.NoError(t, err)

	_, err = conn.Exec(ctx, `INSERT INTO personnel (id, name, phone) VALUES ($1, $2, $3)`,
		leadID, "J. Silva", "555-0101")
	require.NoError(t, err)

	_, err = conn.Exec(ctx, `INSERT INTO tasks (id, mission_id, name, lead_personnel_id) VALUES ($1, $2, $3, $4)`,
		taskID, missionID, "Grid search sector 7", leadID)
	require.NoError(t, err)

	_, err = conn.Exec(ctx, `INSERT INTO sorties (id, task_id, is_active) VALUES ($1, $2, true), ($3, $2, false)`,
		activeSortieID, taskID, staleSortieID)
	require.NoError(t, err)

	_, err = conn.Exec(ctx, `
		INSERT INTO teams (id, mission_id, name, status, last_checkin_at, status_updated_at, current_task_id)
		VALUES ($1, $2, 'Alpha', 'enroute', $3, $4, $5)
	`, alphaID, missionID, checkin, statusChanged, taskID)
	require.NoError(t, err)

	_, err = conn.Exec(ctx, `
		INSERT INTO teams (id, mission_id, name, status)
		VALUES ($1, $2, 'Bravo', 'staged')
	`, bravoID, missionID)
	require.NoError(t, err)

	repo := NewRepository(connStr)

	t.Run("joins task, lead and active sortie", func(t *testing.T) {
		got, err := repo.FetchTeamAssignments(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		alpha := got[0]
		assert.Equal(t, alphaID, alpha.TeamID)
		assert.Equal(t, "Alpha", alpha.TeamName)
		assert.Equal(t, "enroute", alpha.TeamStatus)
		assert.Equal(t, missionID, alpha.MissionID)
		require.NotNil(t, alpha.TaskID)
		assert.Equal(t, taskID, *alpha.TaskID)
		require.NotNil(t, alpha.TaskName)
		assert.Equal(t, "Grid search sector 7", *alpha.TaskName)
		require.NotNil(t, alpha.LeadName)
		assert.Equal(t, "J. Silva", *alpha.LeadName)
		require.NotNil(t, alpha.LeadPhone)
		assert.Equal(t, "555-0101", *alpha.LeadPhone)
		require.NotNil(t, alpha.SortieID)
		assert.Equal(t, activeSortieID, *alpha.SortieID, "only the active sortie joins")

		bravo := got[1]
		assert.Equal(t, bravoID, bravo.TeamID)
		assert.Nil(t, bravo.TaskID)
		assert.Nil(t, bravo.LeadName)
		assert.Nil(t, bravo.SortieID)
	})

	t.Run("keeps checkin and status timestamps distinct", func(t *testing.T) {
		got, err := repo.FetchTeamAssignments(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		alpha := got[0]
		require.NotNil(t, alpha.LastCheckinAt)
		assert.WithinDuration(t, checkin, *alpha.LastCheckinAt, time.Second)
		require.NotNil(t, alpha.LastUpdated)
		assert.WithinDuration(t, checkin, *alpha.LastUpdated, time.Second)
		require.NotNil(t, alpha.TeamStatusUpdated)
		assert.WithinDuration(t, statusChanged, *alpha.TeamStatusUpdated, time.Second)
		assert.False(t, alpha.LastUpdated.Equal(*alpha.TeamStatusUpdated),
			"status change must not refresh the check-in alias")

		bravo := got[1]
		assert.Nil(t, bravo.LastCheckinAt)
		assert.Nil(t, bravo.LastUpdated)
		assert.Nil(t, bravo.TeamStatusUpdated)
	})

	t.Run("each call dials its own connection", func(t *testing.T) {
		first, err := repo.FetchTeamAssignments(ctx)
		require.NoError(t, err)

		second, err := repo.FetchTeamAssignments(ctx)
		require.NoError(t, err)

		assert.Equal(t, len(first), len(second))
	})
}
