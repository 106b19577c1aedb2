package ws

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventNarrativeCreated EventType = "narrative.entry_created"
	EventReadinessChanged EventType = "team.readiness_changed"
)

type Event struct {
	MissionID uuid.UUID   `json:"-"`
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
