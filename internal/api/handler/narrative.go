package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// NarrativeReader interface for narrative entry queries
type NarrativeReader interface {
	ListByMission(ctx context.Context, missionID uuid.UUID, limit int) ([]domain.NarrativeEntry, error)
	CountByTopic(ctx context.Context, missionID uuid.UUID) ([]domain.TopicCount, error)
}

// MissionChecker interface for mission existence checks
type MissionChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// NarrativeHandler handles narrative log requests
type NarrativeHandler struct {
	repo     NarrativeReader
	missions MissionChecker
	logger   *slog.Logger
}

// NewNarrativeHandler creates a new NarrativeHandler instance
func NewNarrativeHandler(repo NarrativeReader, missions MissionChecker, logger *slog.Logger) *NarrativeHandler {
	return &NarrativeHandler{
		repo:     repo,
		missions: missions,
		logger:   logger,
	}
}

// NarrativeListResponse response for the narrative list endpoint
type NarrativeListResponse struct {
	MissionID string                  `json:"mission_id"`
	Count     int                     `json:"count"`
	Entries   []domain.NarrativeEntry `json:"entries"`
}

// NarrativeStatsResponse response for the narrative stats endpoint
type NarrativeStatsResponse struct {
	MissionID string              `json:"mission_id"`
	Total     int64               `json:"total"`
	Topics    []domain.TopicCount `json:"topics"`
}

// List GET /v1/narrative - recent entries for a mission, newest first
func (h *NarrativeHandler) List(c *fiber.Ctx) error {
	// 1. Parse mission_id
	missionID, err := parseMissionID(c)
	if err != nil {
		return err
	}

	// 2. Verify the mission exists
	if err := h.ensureMission(c.Context(), missionID); err != nil {
		return err
	}

	// 3. Clamp limit
	limit := c.QueryInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	// 4. Query entries
	entries, err := h.repo.ListByMission(c.Context(), missionID, limit)
	if err != nil {
		return fmt.Errorf("list narrative entries: %w", err)
	}

	if entries == nil {
		entries = []domain.NarrativeEntry{}
	}

	return c.JSON(NarrativeListResponse{
		MissionID: missionID.String(),
		Count:     len(entries),
		Entries:   entries,
	})
}

// Stats GET /v1/narrative/stats - entry counts per source topic
func (h *NarrativeHandler) Stats(c *fiber.Ctx) error {
	// 1. Parse mission_id
	missionID, err := parseMissionID(c)
	if err != nil {
		return err
	}

	// 2. Verify the mission exists
	if err := h.ensureMission(c.Context(), missionID); err != nil {
		return err
	}

	// 3. Query counts
	counts, err := h.repo.CountByTopic(c.Context(), missionID)
	if err != nil {
		return fmt.Errorf("count narrative entries: %w", err)
	}

	if counts == nil {
		counts = []domain.TopicCount{}
	}

	var total int64
	for _, tc := range counts {
		total += tc.Count
	}

	return c.JSON(NarrativeStatsResponse{
		MissionID: missionID.String(),
		Total:     total,
		Topics:    counts,
	})
}

func (h *NarrativeHandler) ensureMission(ctx context.Context, missionID uuid.UUID) error {
	exists, err := h.missions.Exists(ctx, missionID)
	if err != nil {
		return fmt.Errorf("check mission: %w", err)
	}
	if !exists {
		return domain.ErrMissionNotFound
	}
	return nil
}

// parseMissionID extracts and validates the mission_id query parameter
func parseMissionID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Query("mission_id")
	if raw == "" {
		return uuid.Nil, domain.ErrMissionRequired
	}

	missionID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrMissionRequired.WithError(err)
	}

	return missionID, nil
}
