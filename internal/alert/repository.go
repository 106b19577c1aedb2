package alert

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Conn is the slice of pgx.Conn the repository needs for a single fetch.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close(ctx context.Context) error
}

// ConnectFunc opens a dedicated connection for one repository call.
type ConnectFunc func(ctx context.Context) (Conn, error)

type Repository struct {
	connect ConnectFunc
}

// NewRepository builds a repository that dials databaseURL on every call.
// Each fetch sees a connection-consistent snapshot and holds no state
// between calls.
func NewRepository(databaseURL string) *Repository {
	return &Repository{
		connect: func(ctx context.Context) (Conn, error) {
			return pgx.Connect(ctx, databaseURL)
		},
	}
}

func NewRepositoryWithConnect(connect ConnectFunc) *Repository {
	return &Repository{connect: connect}
}

func (r *Repository) FetchTeamAssignments(ctx context.Context) ([]TeamAssignment, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect for team assignments: %w", err)
	}
	defer conn.Close(ctx)

	query := `
		SELECT t.id, t.name, t.status, t.emergency_flag, t.needs_assistance_flag,
		       t.last_checkin_at, t.status_updated_at, t.mission_id,
		       tk.id, tk.name, p.name, p.phone, s.id
		FROM teams t
		LEFT JOIN tasks tk ON tk.id = t.current_task_id
		LEFT JOIN personnel p ON p.id = tk.lead_personnel_id
		LEFT JOIN sorties s ON s.task_id = tk.id AND s.is_active = true
		ORDER BY t.name
	`

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch team assignments: %w", err)
	}
	defer rows.Close()

	var assignments []TeamAssignment
	for rows.Next() {
		var a TeamAssignment

		err := rows.Scan(
			&a.TeamID, &a.TeamName, &a.TeamStatus, &a.EmergencyFlag,
			&a.NeedsAssistanceFlag, &a.LastCheckinAt, &a.TeamStatusUpdated,
			&a.MissionID, &a.TaskID, &a.TaskName, &a.LeadName, &a.LeadPhone,
			&a.SortieID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan team assignment: %w", err)
		}

		// LastUpdated mirrors the check-in timestamp. Status changes are
		// tracked separately and must not refresh it.
		a.LastUpdated = a.LastCheckinAt

		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
