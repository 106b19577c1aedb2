package bus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/saturnino-fabrica-de-software/vigia/internal/metrics"
)

// Event is a message published to a topic. The payload map is shared
// by reference across subscribers and must not be mutated after publish.
type Event struct {
	Topic   Topic
	Payload map[string]any
}

// OverflowPolicy controls what happens when a subscriber queue is full.
type OverflowPolicy string

const (
	// PolicyDropOldest evicts the oldest queued event to make room.
	PolicyDropOldest OverflowPolicy = "drop_oldest"

	// PolicyDropNewest discards the incoming event.
	PolicyDropNewest OverflowPolicy = "drop_newest"

	// PolicyBlock suspends the publisher until the subscriber drains.
	PolicyBlock OverflowPolicy = "block"
)

// ParseOverflowPolicy converts a configuration string to a policy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch OverflowPolicy(s) {
	case PolicyDropOldest, PolicyDropNewest, PolicyBlock:
		return OverflowPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown overflow policy %q", s)
	}
}

// DefaultQueueCapacity bounds a subscriber queue when no capacity is configured.
const DefaultQueueCapacity = 256

// SubscriptionConfig holds per-subscription queue settings
type SubscriptionConfig struct {
	Capacity int            // Queue depth (default: 256)
	Policy   OverflowPolicy // Overflow behavior (default: drop_oldest)
}

// Subscription is a registered consumer of one topic. Events arrive on
// Events() in publish order. Close deregisters the subscription; events
// already queued remain readable.
type Subscription struct {
	topic  Topic
	policy OverflowPolicy
	events chan Event

	// Closed on unsubscribe so in-flight deliveries never block forever.
	done chan struct{}
	once sync.Once
}

// Topic returns the topic this subscription is registered on.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// Events returns the receive channel for this subscription.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Bus is an in-process pub-sub fan-out with bounded per-subscriber
// queues. Publish delivers to the set of subscribers registered at the
// moment of the call; registry mutations never tear a delivery in half.
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]*Subscription

	defaults SubscriptionConfig
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates an event bus. Zero-value defaults fields fall back to a
// 256-deep drop_oldest queue per subscriber.
func New(logger *slog.Logger, m *metrics.Metrics, defaults SubscriptionConfig) *Bus {
	if defaults.Capacity <= 0 {
		defaults.Capacity = DefaultQueueCapacity
	}
	if defaults.Policy == "" {
		defaults.Policy = PolicyDropOldest
	}

	return &Bus{
		subs:     make(map[Topic][]*Subscription),
		defaults: defaults,
		logger:   logger,
		metrics:  m,
	}
}

// Subscribe registers a consumer on topic using the bus defaults.
func (b *Bus) Subscribe(topic Topic) *Subscription {
	return b.SubscribeWith(topic, b.defaults)
}

// SubscribeWith registers a consumer on topic with explicit queue settings.
func (b *Bus) SubscribeWith(topic Topic, cfg SubscriptionConfig) *Subscription {
	if cfg.Capacity <= 0 {
		cfg.Capacity = b.defaults.Capacity
	}
	if cfg.Policy == "" {
		cfg.Policy = b.defaults.Policy
	}

	sub := &Subscription{
		topic:  topic,
		policy: cfg.Policy,
		events: make(chan Event, cfg.Capacity),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], sub)
	b.mu.Unlock()

	return sub
}

// Unsubscribe deregisters sub. Publishes after this call no longer
// reach it; events already queued remain readable. Unsubscribing a
// subscription that is not registered is a no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	subs := b.subs[sub.topic]
	for i, s := range subs {
		if s == sub {
			b.subs[sub.topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	sub.close()
}

// Publish delivers payload to every subscriber registered on topic at
// the moment of the call. Each subscriber receives events in publish
// order. A full queue is resolved by the subscription's overflow
// policy; only PolicyBlock can suspend the caller.
func (b *Bus) Publish(topic Topic, payload map[string]any) {
	ev := Event{Topic: topic, Payload: payload}

	b.mu.RLock()
	subs := make([]*Subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.deliver(sub, ev)
	}

	b.metrics.EventPublished(string(topic))
}

func (b *Bus) deliver(sub *Subscription, ev Event) {
	switch sub.policy {
	case PolicyBlock:
		select {
		case sub.events <- ev:
		case <-sub.done:
		}

	case PolicyDropNewest:
		select {
		case sub.events <- ev:
		case <-sub.done:
		default:
			b.dropped(sub, ev)
		}

	default: // PolicyDropOldest
		for {
			select {
			case sub.events <- ev:
				return
			case <-sub.done:
				return
			default:
			}

			// Queue full: evict one queued event and retry. The drain is
			// non-blocking because the consumer may race us for it.
			select {
			case old := <-sub.events:
				b.dropped(sub, old)
			default:
			}
		}
	}
}

func (b *Bus) dropped(sub *Subscription, ev Event) {
	b.logger.Debug("subscriber queue full, dropping event",
		"topic", ev.Topic,
		"policy", sub.policy,
	)
	b.metrics.EventDropped(string(ev.Topic), string(sub.policy))
}
