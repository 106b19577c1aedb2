package narrative

import (
	"context"
	"log/slog"
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/bus"
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
)

// EntryNotifier receives every persisted narrative entry, typically to
// push it to live watchers.
type EntryNotifier interface {
	EntryCreated(entry *domain.NarrativeEntry)
}

// NoOpNotifier discards notifications.
type NoOpNotifier struct{}

func (NoOpNotifier) EntryCreated(*domain.NarrativeEntry) {}

// Ingestor turns bus events into persisted narrative entries.
type Ingestor struct {
	templates map[bus.Topic]string
	entries   repository.NarrativeRepositoryInterface
	notifier  EntryNotifier
	logger    *slog.Logger

	now func() time.Time
}

// NewIngestor creates an ingestor over the given rule table. A nil
// notifier disables live notifications.
func NewIngestor(
	templates map[bus.Topic]string,
	entries repository.NarrativeRepositoryInterface,
	notifier EntryNotifier,
	logger *slog.Logger,
) *Ingestor {
	if notifier == nil {
		notifier = NoOpNotifier{}
	}

	return &Ingestor{
		templates: templates,
		entries:   entries,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Ingest maps one event to zero or one persisted narrative entry.
// Topics without a configured template return (nil, nil). The entry
// timestamp comes from the payload event_time field when present,
// otherwise from the ingestion wall clock, both UTC at second
// precision. Nothing is written when an error is returned.
func (i *Ingestor) Ingest(ctx context.Context, event bus.Event) (*domain.NarrativeEntry, error) {
	template, ok := i.templates[event.Topic]
	if !ok {
		return nil, nil
	}

	text := Render(template, event.Payload)

	timestamp, ok := domain.PayloadTime(event.Payload, "event_time")
	if !ok {
		timestamp = i.now().UTC()
	}
	timestamp = timestamp.Truncate(time.Second)

	missionID, ok := domain.PayloadUUID(event.Payload, "mission_id")
	if !ok {
		return nil, domain.ErrMissionRequired
	}

	entry := &domain.NarrativeEntry{
		MissionID:    missionID,
		TimestampUTC: timestamp,
		SourceTopic:  event.Topic.String(),
		Text:         text,
	}

	if err := entry.Validate(); err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	if err := i.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	i.notifier.EntryCreated(entry)

	return entry, nil
}
