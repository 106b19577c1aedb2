package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/vigia/internal/alert"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/vigia/internal/bus"
	"github.com/saturnino-fabrica-de-software/vigia/internal/config"
	"github.com/saturnino-fabrica-de-software/vigia/internal/metrics"
	"github.com/saturnino-fabrica-de-software/vigia/internal/narrative"
	"github.com/saturnino-fabrica-de-software/vigia/internal/pipeline"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
	"github.com/saturnino-fabrica-de-software/vigia/internal/ws"
)

type Dependencies struct {
	Config        *config.Config
	DB            *pgxpool.Pool
	EventBus      *bus.Bus
	Metrics       *metrics.Metrics
	NarrativeRepo repository.NarrativeRepositoryInterface
	MissionRepo   repository.MissionRepositoryInterface
	TeamRepo      alert.TeamFetcher
}

type Router struct {
	app             *fiber.App
	logger          *slog.Logger
	deps            *Dependencies
	rateLimiter     *middleware.RateLimiter
	wsHub           *ws.Hub
	pipeline        *pipeline.Pool
	readinessWorker *alert.Worker
	cancelHub       context.CancelFunc
	cancelPipeline  context.CancelFunc
	cancelWorker    context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Vigia API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints (no auth required)
	var pool *pgxpool.Pool
	if r.deps != nil {
		pool = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pool)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// API v1 group
	v1 := r.app.Group("/v1")

	// Only configure ingestion routes if dependencies were provided
	if r.deps != nil {
		cfg := r.deps.Config

		// WebSocket hub for the live mission feed
		r.wsHub = ws.NewHub()
		hubCtx, hubCancel := context.WithCancel(context.Background())
		r.cancelHub = hubCancel
		go r.wsHub.Run(hubCtx)

		// Narrative pipeline: one consumer loop per topic
		ingestor := narrative.NewIngestor(
			narrative.DefaultTemplates(),
			r.deps.NarrativeRepo,
			narrative.NewHubNotifier(r.wsHub),
			r.logger,
		)
		r.pipeline = pipeline.New(r.deps.EventBus, ingestor, r.logger, r.deps.Metrics, pipeline.Config{
			IngestTimeout: cfg.IngestTimeout,
			DrainTimeout:  cfg.PipelineDrainTimeout,
		})
		pipelineCtx, pipelineCancel := context.WithCancel(context.Background())
		r.cancelPipeline = pipelineCancel
		r.pipeline.Start(pipelineCtx)

		// Readiness worker: periodic evaluation with transition alerts
		engine := alert.NewEngine(alert.Thresholds{
			WarningMinutes: cfg.CheckinWarningMinutes,
			OverdueMinutes: cfg.CheckinOverdueMinutes,
		}, cfg.IneligibleStatuses)
		notifier := alert.NewBusNotifier(r.deps.EventBus, r.wsHub, r.logger)
		r.readinessWorker = alert.NewWorker(r.deps.TeamRepo, engine, notifier, r.logger, r.deps.Metrics, cfg.ReadinessInterval)
		workerCtx, workerCancel := context.WithCancel(context.Background())
		r.cancelWorker = workerCancel
		go r.readinessWorker.Start(workerCtx)

		// Auth middleware (static bearer token; empty token disables it)
		v1.Use(middleware.Auth(cfg.IngestAPIKey))

		// Rate limiting (per source IP)
		r.rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Max:    cfg.RateLimitMax,
			Window: cfg.RateLimitWindow,
		})
		v1.Use(r.rateLimiter.Handler())

		// Handlers
		eventsHandler := handler.NewEventsHandler(r.deps.EventBus, r.logger)
		narrativeHandler := handler.NewNarrativeHandler(r.deps.NarrativeRepo, r.deps.MissionRepo, r.logger)
		teamsHandler := handler.NewTeamsHandler(r.deps.TeamRepo, engine, r.logger)

		// Event ingress
		v1.Post("/events", eventsHandler.Publish)

		// Narrative log
		v1.Get("/narrative", narrativeHandler.List)
		v1.Get("/narrative/stats", narrativeHandler.Stats)

		// Team readiness
		v1.Get("/teams/readiness", teamsHandler.Readiness)

		// WebSocket live feed
		v1.Get("/live", ws.UpgradeMiddleware(), ws.Handler(r.wsHub))
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop the readiness worker
	if r.cancelWorker != nil {
		r.cancelWorker()
	}
	if r.readinessWorker != nil {
		r.readinessWorker.Stop()
	}

	// Stop the pipeline, draining in-flight ingestions
	if r.pipeline != nil {
		r.pipeline.Stop()
	}
	if r.cancelPipeline != nil {
		r.cancelPipeline()
	}

	// Stop WebSocket hub
	if r.cancelHub != nil {
		r.cancelHub()
	}

	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
