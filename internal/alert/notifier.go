package alert

import (
	"context"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/vigia/internal/bus"
	"github.com/saturnino-fabrica-de-software/vigia/internal/ws"
)

// BusNotifier feeds readiness transitions back into the system: onto the
// event bus, where the pipeline turns them into narrative entries, and
// to live WebSocket subscribers of the mission.
type BusNotifier struct {
	eventBus *bus.Bus
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewBusNotifier(eventBus *bus.Bus, hub *ws.Hub, logger *slog.Logger) *BusNotifier {
	return &BusNotifier{
		eventBus: eventBus,
		hub:      hub,
		logger:   logger,
	}
}

func (n *BusNotifier) ReadinessChanged(ctx context.Context, assignment TeamAssignment, previous, current Kind) {
	payload := map[string]any{
		"mission_id": assignment.MissionID.String(),
		"team_id":    assignment.TeamID.String(),
		"team_name":  assignment.TeamName,
		"previous":   previous.String(),
		"current":    current.String(),
	}

	if n.eventBus != nil {
		n.eventBus.Publish(bus.TopicReadinessChanged, payload)
	}

	if n.hub != nil {
		n.hub.BroadcastToMission(assignment.MissionID, ws.EventReadinessChanged, payload)
	}

	n.logger.Debug("readiness transition published",
		"team_id", assignment.TeamID,
		"previous", previous.String(),
		"current", current.String(),
	)
}
