package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/bus"
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/metrics"
)

// Ingestor consumes one event and persists at most one narrative entry.
type Ingestor interface {
	Ingest(ctx context.Context, event bus.Event) (*domain.NarrativeEntry, error)
}

// Config holds pool settings
type Config struct {
	Topics        []bus.Topic   // Consumer loops to start (default: bus.Registry())
	IngestTimeout time.Duration // Per-event deadline (default: 10 seconds)
	DrainTimeout  time.Duration // Max wait for in-flight work on Stop (default: 5 seconds)
}

// Pool runs one consumer loop per topic. Each loop drains its own bus
// subscription in FIFO order and hands events to the ingestor, one at
// a time. A failed or timed-out ingestion is logged and dropped; the
// loop moves on to the next event.
type Pool struct {
	eventBus *bus.Bus
	ingestor Ingestor
	logger   *slog.Logger
	metrics  *metrics.Metrics

	topics        []bus.Topic
	ingestTimeout time.Duration
	drainTimeout  time.Duration

	// Lifecycle
	subs     []*bus.Subscription
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a pool consuming the default topic registry unless
// config overrides it.
func New(eventBus *bus.Bus, ingestor Ingestor, logger *slog.Logger, m *metrics.Metrics, config Config) *Pool {
	if len(config.Topics) == 0 {
		config.Topics = bus.Registry()
	}
	if config.IngestTimeout == 0 {
		config.IngestTimeout = 10 * time.Second
	}
	if config.DrainTimeout == 0 {
		config.DrainTimeout = 5 * time.Second
	}

	return &Pool{
		eventBus:      eventBus,
		ingestor:      ingestor,
		logger:        logger,
		metrics:       m,
		topics:        config.Topics,
		ingestTimeout: config.IngestTimeout,
		drainTimeout:  config.DrainTimeout,
		done:          make(chan struct{}),
	}
}

// Start subscribes and launches one consumer loop per topic.
func (p *Pool) Start(ctx context.Context) {
	for _, topic := range p.topics {
		sub := p.eventBus.Subscribe(topic)
		p.subs = append(p.subs, sub)

		p.wg.Add(1)
		go p.consume(ctx, sub)
	}

	p.logger.Info("pipeline started",
		"topics", len(p.topics),
		"ingest_timeout", p.ingestTimeout,
	)
}

// Stop deregisters all subscriptions and waits up to the drain timeout
// for in-flight ingestions to finish. Stop is idempotent.
func (p *Pool) Stop() {
	p.stopOnce.Do(p.stop)
}

func (p *Pool) stop() {
	for _, sub := range p.subs {
		p.eventBus.Unsubscribe(sub)
	}
	close(p.done)

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		p.logger.Info("pipeline stopped")
	case <-time.After(p.drainTimeout):
		p.logger.Warn("pipeline stop timed out, abandoning in-flight work",
			"drain_timeout", p.drainTimeout,
		)
	}
}

func (p *Pool) consume(ctx context.Context, sub *bus.Subscription) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case event := <-sub.Events():
			p.process(ctx, event)
		}
	}
}

type ingestResult struct {
	entry *domain.NarrativeEntry
	err   error
}

// process hands one event to the ingestor under the per-event deadline.
// The call runs in its own goroutine so a hung ingestion cannot stall
// the topic's consumer loop past the deadline.
func (p *Pool) process(ctx context.Context, event bus.Event) {
	start := time.Now()

	ingestCtx, cancel := context.WithTimeout(ctx, p.ingestTimeout)
	defer cancel()

	resultCh := make(chan ingestResult, 1)
	go func() {
		entry, err := p.ingestor.Ingest(ingestCtx, event)
		resultCh <- ingestResult{entry: entry, err: err}
	}()

	select {
	case result := <-resultCh:
		switch {
		case result.err != nil:
			p.logger.Error("event ingestion failed, dropping event",
				"topic", event.Topic,
				"error", result.err,
			)
			p.metrics.EntryIngested(string(event.Topic), "failed")
		case result.entry == nil:
			p.metrics.EntryIngested(string(event.Topic), "skipped")
		default:
			p.logger.Debug("narrative entry ingested",
				"topic", event.Topic,
				"entry_id", result.entry.ID,
				"mission_id", result.entry.MissionID,
			)
			p.metrics.EntryIngested(string(event.Topic), "persisted")
		}

	case <-ingestCtx.Done():
		p.logger.Error("event ingestion timed out, dropping event",
			"topic", event.Topic,
			"timeout", p.ingestTimeout,
		)
		p.metrics.EntryIngested(string(event.Topic), "timeout")
	}

	p.metrics.ObserveIngestDuration(string(event.Topic), time.Since(start))
}
