package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.NotNil(t, hub.missions)
	assert.NotNil(t, hub.broadcast)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
}

func TestHub_AddAndRemoveClient(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	missionID := uuid.New()
	client := &Client{
		hub:       hub,
		missionID: missionID,
		send:      make(chan []byte, 1),
	}

	hub.register <- client
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, hub.GetConnectedClients(missionID))

	hub.unregister <- client
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 0, hub.GetConnectedClients(missionID))
}

func TestHub_BroadcastToMission(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	missionID := uuid.New()
	client := &Client{
		hub:       hub,
		missionID: missionID,
		send:      make(chan []byte, 10),
	}

	hub.register <- client
	time.Sleep(50 * time.Millisecond)

	testData := map[string]string{"text": "Team Alpha checked in via radio"}
	hub.BroadcastToMission(missionID, EventNarrativeCreated, testData)

	time.Sleep(50 * time.Millisecond)

	select {
	case msg := <-client.send:
		var event Event
		err := json.Unmarshal(msg, &event)
		assert.NoError(t, err)
		assert.Equal(t, EventNarrativeCreated, event.Type)
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestHub_MissionIsolation(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	mission1 := uuid.New()
	mission2 := uuid.New()

	client1 := &Client{
		hub:       hub,
		missionID: mission1,
		send:      make(chan []byte, 10),
	}

	client2 := &Client{
		hub:       hub,
		missionID: mission2,
		send:      make(chan []byte, 10),
	}

	hub.register <- client1
	hub.register <- client2
	time.Sleep(50 * time.Millisecond)

	testData := map[string]string{"team_name": "Alpha"}
	hub.BroadcastToMission(mission1, EventReadinessChanged, testData)

	time.Sleep(50 * time.Millisecond)

	select {
	case <-client1.send:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client1 should receive message")
	}

	select {
	case <-client2.send:
		t.Fatal("client2 should not receive message from mission1")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_SlowClientStaysConnected(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	missionID := uuid.New()
	client := &Client{
		hub:       hub,
		missionID: missionID,
		send:      make(chan []byte, 1),
	}

	hub.register <- client
	time.Sleep(50 * time.Millisecond)

	// The second broadcast overflows the buffer and is dropped for
	// this client; the registration must survive.
	hub.BroadcastToMission(missionID, EventNarrativeCreated, map[string]string{"seq": "1"})
	hub.BroadcastToMission(missionID, EventNarrativeCreated, map[string]string{"seq": "2"})
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, hub.GetConnectedClients(missionID))
	assert.Len(t, client.send, 1)
}
