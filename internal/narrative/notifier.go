package narrative

import (
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/ws"
)

// Broadcaster pushes an event to every live watcher of a mission.
type Broadcaster interface {
	BroadcastToMission(missionID uuid.UUID, eventType ws.EventType, data interface{})
}

// HubNotifier forwards persisted entries to the WebSocket hub.
type HubNotifier struct {
	hub Broadcaster
}

func NewHubNotifier(hub Broadcaster) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) EntryCreated(entry *domain.NarrativeEntry) {
	if n.hub == nil || entry == nil {
		return
	}

	n.hub.BroadcastToMission(entry.MissionID, ws.EventNarrativeCreated, entry)
}
