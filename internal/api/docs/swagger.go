package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// PublishEventRequest represents the event ingress request body
type PublishEventRequest struct {
	Topic   string         `json:"topic" example:"personnel.checkin"`
	Payload map[string]any `json:"payload"`
}

// PublishEventResponse represents the response for an accepted event
type PublishEventResponse struct {
	Status string `json:"status" example:"accepted"`
	Topic  string `json:"topic" example:"personnel.checkin"`
}

// NarrativeEntryData represents one narrative log entry
type NarrativeEntryData struct {
	ID           string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	MissionID    string `json:"mission_id" example:"0b36b4a2-64e6-4af0-8b2f-9d3e7c0f81aa"`
	TimestampUTC string `json:"timestamp_utc" example:"2026-03-14T10:30:00Z"`
	SourceTopic  string `json:"source_topic" example:"personnel.checkin"`
	Text         string `json:"text" example:"Team Alpha checked in via radio"`
	CreatedAt    string `json:"created_at" example:"2026-03-14T10:30:01Z"`
}

// NarrativeListResponse represents the narrative list response
type NarrativeListResponse struct {
	MissionID string               `json:"mission_id" example:"0b36b4a2-64e6-4af0-8b2f-9d3e7c0f81aa"`
	Count     int                  `json:"count" example:"2"`
	Entries   []NarrativeEntryData `json:"entries"`
}

// TopicCountData represents entry totals for one source topic
type TopicCountData struct {
	SourceTopic string `json:"source_topic" example:"personnel.checkin"`
	Count       int64  `json:"count" example:"12"`
}

// NarrativeStatsResponse represents the narrative stats response
type NarrativeStatsResponse struct {
	MissionID string           `json:"mission_id" example:"0b36b4a2-64e6-4af0-8b2f-9d3e7c0f81aa"`
	Total     int64            `json:"total" example:"15"`
	Topics    []TopicCountData `json:"topics"`
}

// TeamReadinessData represents one team with its evaluated alert kind
type TeamReadinessData struct {
	TeamID              string `json:"team_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	MissionID           string `json:"mission_id" example:"0b36b4a2-64e6-4af0-8b2f-9d3e7c0f81aa"`
	TeamName            string `json:"team_name" example:"Alpha"`
	TeamStatus          string `json:"team_status" example:"deployed"`
	EmergencyFlag       bool   `json:"emergency_flag" example:"false"`
	NeedsAssistanceFlag bool   `json:"needs_assistance_flag" example:"false"`
	LastCheckinAt       string `json:"last_checkin_at" example:"2026-03-14T10:30:00Z"`
	LastUpdated         string `json:"last_updated" example:"2026-03-14T10:30:00Z"`
	TeamStatusUpdated   string `json:"team_status_updated" example:"2026-03-14T09:15:00Z"`
	TaskName            string `json:"task_name,omitempty" example:"Grid search sector 7"`
	LeadName            string `json:"lead_name,omitempty" example:"J. Alves"`
	LeadPhone           string `json:"lead_phone,omitempty" example:"+55 11 99999-0000"`
	AlertKind           string `json:"alert_kind" example:"CHECKIN_WARNING"`
}

// TeamsReadinessResponse represents the team readiness response
type TeamsReadinessResponse struct {
	Count int                 `json:"count" example:"1"`
	Teams []TeamReadinessData `json:"teams"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Vigia Narrative API",
		Version:     "v1.0.0",
		Description: "Event-driven mission narrative log and team readiness alerts for incident management",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/events - Event ingress
		endpoint.New(
			endpoint.POST,
			"/events",
			endpoint.WithTags("Events"),
			endpoint.WithSummary("Publish an event for ingestion"),
			endpoint.WithDescription("Accepts a JSON body {topic, payload} and publishes it onto the event bus. The narrative pipeline consumes it asynchronously; a 202 means queued, not persisted. The payload must carry a mission_id for the entry to be written."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(PublishEventResponse{}, "202", "Event accepted for ingestion"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "UNKNOWN_TOPIC", Message: "Event topic is not registered"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/teams/readiness - Team readiness
		endpoint.New(
			endpoint.GET,
			"/teams/readiness",
			endpoint.WithTags("Teams"),
			endpoint.WithSummary("List team assignments with readiness alerts"),
			endpoint.WithDescription("Returns every team with its current task, lead contact, active sortie and the alert kind evaluated at request time (NONE, CHECKIN_WARNING, CHECKIN_OVERDUE, NEEDS_ASSISTANCE, EMERGENCY)."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(TeamsReadinessResponse{}, "200", "Teams evaluated successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/narrative - Narrative log
		endpoint.New(
			endpoint.GET,
			"/narrative",
			endpoint.WithTags("Narrative"),
			endpoint.WithSummary("List recent narrative entries"),
			endpoint.WithDescription("Returns the most recent narrative entries for a mission, newest first."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("mission_id", parameter.Query, parameter.WithDescription("Mission identifier (UUID, required)")),
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum number of entries (default: 50, max: 500)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(NarrativeListResponse{}, "200", "Entries listed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "MISSION_NOT_FOUND", Message: "Mission not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "MISSION_REQUIRED", Message: "A valid mission_id is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/narrative/stats - Narrative stats
		endpoint.New(
			endpoint.GET,
			"/narrative/stats",
			endpoint.WithTags("Narrative"),
			endpoint.WithSummary("Count narrative entries per topic"),
			endpoint.WithDescription("Returns entry totals per source topic for a mission, for after-action reporting."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("mission_id", parameter.Query, parameter.WithDescription("Mission identifier (UUID, required)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(NarrativeStatsResponse{}, "200", "Counts returned successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "MISSION_NOT_FOUND", Message: "Mission not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "MISSION_REQUIRED", Message: "A valid mission_id is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/live - WebSocket live feed
		endpoint.New(
			endpoint.GET,
			"/live",
			endpoint.WithTags("Live"),
			endpoint.WithSummary("Subscribe to the live mission feed"),
			endpoint.WithDescription("Upgrades to a WebSocket and streams narrative.entry_created and team.readiness_changed events for one mission. Not consumable from Swagger UI."),
			endpoint.WithParams(
				parameter.StrParam("mission_id", parameter.Query, parameter.WithDescription("Mission identifier (UUID, required)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(struct{}{}, "101", "Switching Protocols"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "HTTP_ERROR", Message: "Upgrade Required"}, "426", "Upgrade Required"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
