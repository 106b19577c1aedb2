package alert

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/metrics"
)

// TeamFetcher materializes the team assignment snapshot the worker
// evaluates each tick.
type TeamFetcher interface {
	FetchTeamAssignments(ctx context.Context) ([]TeamAssignment, error)
}

// Notifier receives readiness transitions. Implementations are
// best-effort; the worker never retries a notification.
type Notifier interface {
	ReadinessChanged(ctx context.Context, assignment TeamAssignment, previous, current Kind)
}

// NopNotifier discards transitions.
type NopNotifier struct{}

func (NopNotifier) ReadinessChanged(context.Context, TeamAssignment, Kind, Kind) {}

type Worker struct {
	repo     TeamFetcher
	engine   *Engine
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
	interval time.Duration

	// previous holds the kind from the last tick, keyed by team.
	previous map[uuid.UUID]Kind

	done     chan struct{}
	stopOnce sync.Once
}

func NewWorker(repo TeamFetcher, engine *Engine, notifier Notifier, logger *slog.Logger, m *metrics.Metrics, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &Worker{
		repo:     repo,
		engine:   engine,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
		interval: interval,
		previous: make(map[uuid.UUID]Kind),
		done:     make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("readiness worker started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("readiness worker stopped")
			return
		case <-w.done:
			w.logger.Info("readiness worker stopped")
			return
		case <-ticker.C:
			w.process(ctx)
		}
	}
}

func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}

func (w *Worker) process(ctx context.Context) {
	w.logger.Debug("evaluating team readiness")

	assignments, err := w.repo.FetchTeamAssignments(ctx)
	if err != nil {
		w.logger.Error("failed to fetch team assignments", "error", err)
		return
	}

	w.logger.Debug("fetched team assignments", "count", len(assignments))

	now := time.Now()
	next := make(map[uuid.UUID]Kind, len(assignments))

	for _, assignment := range assignments {
		kind := w.engine.Evaluate(assignment.State(), now)
		w.metrics.ReadinessEvaluated(kind.String())

		prev, seen := w.previous[assignment.TeamID]
		next[assignment.TeamID] = kind

		if seen && kind == prev {
			continue
		}

		// A team first seen in its quiet state has nothing to announce.
		if !seen && kind == KindNone {
			continue
		}

		w.logger.Info("team readiness changed",
			"team_id", assignment.TeamID,
			"team_name", assignment.TeamName,
			"mission_id", assignment.MissionID,
			"previous", prev.String(),
			"current", kind.String(),
		)

		w.notifier.ReadinessChanged(ctx, assignment, prev, kind)
	}

	// Teams no longer assigned drop out; if one returns it is treated
	// as first seen again.
	w.previous = next
}
