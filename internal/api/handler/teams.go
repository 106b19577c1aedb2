package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/vigia/internal/alert"
)

// TeamFetcher interface for the team assignment repository
type TeamFetcher interface {
	FetchTeamAssignments(ctx context.Context) ([]alert.TeamAssignment, error)
}

// ReadinessEvaluator interface for the alert engine
type ReadinessEvaluator interface {
	Evaluate(state alert.State, now time.Time) alert.Kind
}

// TeamsHandler handles team readiness requests
type TeamsHandler struct {
	repo   TeamFetcher
	engine ReadinessEvaluator
	logger *slog.Logger
}

// NewTeamsHandler creates a new TeamsHandler instance
func NewTeamsHandler(repo TeamFetcher, engine ReadinessEvaluator, logger *slog.Logger) *TeamsHandler {
	return &TeamsHandler{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

// TeamReadinessResponse one team assignment with its evaluated alert kind
type TeamReadinessResponse struct {
	alert.TeamAssignment
	AlertKind alert.Kind `json:"alert_kind"`
}

// TeamsReadinessResponse response for the team readiness endpoint
type TeamsReadinessResponse struct {
	Count int                     `json:"count"`
	Teams []TeamReadinessResponse `json:"teams"`
}

// Readiness GET /v1/teams/readiness - all team assignments with alert kinds
func (h *TeamsHandler) Readiness(c *fiber.Ctx) error {
	// 1. Fetch assignment rows
	assignments, err := h.repo.FetchTeamAssignments(c.Context())
	if err != nil {
		return fmt.Errorf("fetch team readiness: %w", err)
	}

	// 2. Evaluate every team against the same clock
	now := time.Now()
	teams := make([]TeamReadinessResponse, 0, len(assignments))
	for _, assignment := range assignments {
		teams = append(teams, TeamReadinessResponse{
			TeamAssignment: assignment,
			AlertKind:      h.engine.Evaluate(assignment.State(), now),
		})
	}

	return c.JSON(TeamsReadinessResponse{
		Count: len(teams),
		Teams: teams,
	})
}
