package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Hub struct {
	clients    map[*Client]bool
	missions   map[uuid.UUID]map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		missions:   make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.broadcastToMission(event)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	if h.missions[client.missionID] == nil {
		h.missions[client.missionID] = make(map[*Client]bool)
	}
	h.missions[client.missionID][client] = true
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		delete(h.missions[client.missionID], client)

		if len(h.missions[client.missionID]) == 0 {
			delete(h.missions, client.missionID)
		}

		close(client.send)
	}
}

func (h *Hub) broadcastToMission(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.missions[event.MissionID]
	if clients == nil {
		return
	}

	message, err := json.Marshal(event)
	if err != nil {
		return
	}

	// A client whose buffer is full misses this event but stays
	// connected; the read pump unregisters it when the socket dies.
	for client := range clients {
		select {
		case client.send <- message:
		default:
		}
	}
}

func (h *Hub) BroadcastToMission(missionID uuid.UUID, eventType EventType, data interface{}) {
	event := Event{
		MissionID: missionID,
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
	}
}

func (h *Hub) GetConnectedClients(missionID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.missions[missionID])
}
