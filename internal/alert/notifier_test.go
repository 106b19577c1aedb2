package alert

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/vigia/internal/bus"
	"github.com/saturnino-fabrica-de-software/vigia/internal/ws"
)

func TestBusNotifier_ReadinessChanged(t *testing.T) {
	eventBus := bus.New(workerTestLogger(), nil, bus.SubscriptionConfig{})
	sub := eventBus.Subscribe(bus.TopicReadinessChanged)
	defer eventBus.Unsubscribe(sub)

	notifier := NewBusNotifier(eventBus, ws.NewHub(), workerTestLogger())

	assignment := emergencyTeam(uuid.New())
	notifier.ReadinessChanged(context.Background(), assignment, KindNone, KindEmergency)

	select {
	case ev := <-sub.Events():
		assert.Equal(t, bus.TopicReadinessChanged, ev.Topic)
		assert.Equal(t, assignment.MissionID.String(), ev.Payload["mission_id"])
		assert.Equal(t, assignment.TeamID.String(), ev.Payload["team_id"])
		assert.Equal(t, "Alpha", ev.Payload["team_name"])
		assert.Equal(t, "NONE", ev.Payload["previous"])
		assert.Equal(t, "EMERGENCY", ev.Payload["current"])
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for readiness event")
	}
}

func TestBusNotifier_PayloadFeedsNarrativeTemplate(t *testing.T) {
	// The transition payload must carry every key the readiness
	// narrative template substitutes.
	eventBus := bus.New(workerTestLogger(), nil, bus.SubscriptionConfig{})
	sub := eventBus.Subscribe(bus.TopicReadinessChanged)
	defer eventBus.Unsubscribe(sub)

	notifier := NewBusNotifier(eventBus, nil, workerTestLogger())
	notifier.ReadinessChanged(context.Background(), emergencyTeam(uuid.New()), KindCheckinWarning, KindCheckinOverdue)

	select {
	case ev := <-sub.Events():
		for _, key := range []string{"mission_id", "team_name", "previous", "current"} {
			require.Contains(t, ev.Payload, key)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for readiness event")
	}
}

func TestBusNotifier_NilTargetsAreSafe(t *testing.T) {
	notifier := NewBusNotifier(nil, nil, workerTestLogger())

	assert.NotPanics(t, func() {
		notifier.ReadinessChanged(context.Background(), emergencyTeam(uuid.New()), KindNone, KindEmergency)
	})
}
