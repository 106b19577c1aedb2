package handler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/vigia/internal/bus"
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// EventPublisher interface for the event bus
type EventPublisher interface {
	Publish(topic bus.Topic, payload map[string]any)
}

// EventsHandler handles event ingress requests
type EventsHandler struct {
	publisher EventPublisher
	topics    map[bus.Topic]bool
	logger    *slog.Logger
}

// NewEventsHandler creates a new EventsHandler instance
func NewEventsHandler(publisher EventPublisher, logger *slog.Logger) *EventsHandler {
	topics := make(map[bus.Topic]bool, len(bus.Registry()))
	for _, topic := range bus.Registry() {
		topics[topic] = true
	}

	return &EventsHandler{
		publisher: publisher,
		topics:    topics,
		logger:    logger,
	}
}

// PublishEventRequest request for the event ingress endpoint
type PublishEventRequest struct {
	Topic   string         `json:"topic"`
	Payload map[string]any `json:"payload"`
}

// PublishEventResponse response for the event ingress endpoint
type PublishEventResponse struct {
	Status string `json:"status"`
	Topic  string `json:"topic"`
}

// Publish POST /v1/events - accept an event for asynchronous ingestion
func (h *EventsHandler) Publish(c *fiber.Ctx) error {
	// 1. Parse request body
	var req PublishEventRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	// 2. Validate topic
	if req.Topic == "" {
		return domain.ErrValidationFailed.WithError(errors.New("topic is required"))
	}

	topic := bus.Topic(req.Topic)
	if !h.topics[topic] {
		return domain.ErrUnknownTopic.WithError(fmt.Errorf("topic %q", req.Topic))
	}

	// 3. Publish to the bus
	// Payload validation happens in the pipeline; a bad payload is
	// dropped there, not rejected here.
	if req.Payload == nil {
		req.Payload = map[string]any{}
	}
	h.publisher.Publish(topic, req.Payload)

	// 4. Return 202 Accepted
	return c.Status(fiber.StatusAccepted).JSON(PublishEventResponse{
		Status: "accepted",
		Topic:  req.Topic,
	})
}
