package alert

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a team's readiness. Higher kinds carry higher urgency
// and win when several conditions hold at once.
type Kind int

const (
	KindNone Kind = iota
	KindCheckinWarning
	KindCheckinOverdue
	KindNeedsAssistance
	KindEmergency
)

var kindNames = map[Kind]string{
	KindNone:            "NONE",
	KindCheckinWarning:  "CHECKIN_WARNING",
	KindCheckinOverdue:  "CHECKIN_OVERDUE",
	KindNeedsAssistance: "NEEDS_ASSISTANCE",
	KindEmergency:       "EMERGENCY",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "NONE"
}

// MarshalText renders the kind by name in JSON responses.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// State is the team snapshot the engine classifies.
type State struct {
	EmergencyFlag       bool
	NeedsAssistanceFlag bool
	TeamStatus          string
	LastCheckinAt       *time.Time
	ReferenceTime       *time.Time
}

// Thresholds hold the check-in ageing boundaries in minutes. Both
// comparisons are inclusive.
type Thresholds struct {
	WarningMinutes float64
	OverdueMinutes float64
}

// DefaultThresholds returns the standard 50/60 minute boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{WarningMinutes: 50, OverdueMinutes: 60}
}

// TeamAssignment is one row of the readiness join: a team, its current
// task, the task's lead contact and the active sortie, if any.
type TeamAssignment struct {
	TeamID              uuid.UUID  `json:"team_id"`
	MissionID           uuid.UUID  `json:"mission_id"`
	TeamName            string     `json:"team_name"`
	TeamStatus          string     `json:"team_status"`
	EmergencyFlag       bool       `json:"emergency_flag"`
	NeedsAssistanceFlag bool       `json:"needs_assistance_flag"`
	LastCheckinAt       *time.Time `json:"last_checkin_at"`
	LastUpdated         *time.Time `json:"last_updated"`
	TeamStatusUpdated   *time.Time `json:"team_status_updated"`
	TaskID              *uuid.UUID `json:"task_id,omitempty"`
	TaskName            *string    `json:"task_name,omitempty"`
	LeadName            *string    `json:"lead_name,omitempty"`
	LeadPhone           *string    `json:"lead_phone,omitempty"`
	SortieID            *uuid.UUID `json:"sortie_id,omitempty"`
}

// State converts the row into evaluator input. The status-change
// timestamp only serves as the fallback time basis; it never stands in
// for a recorded check-in.
func (a *TeamAssignment) State() State {
	return State{
		EmergencyFlag:       a.EmergencyFlag,
		NeedsAssistanceFlag: a.NeedsAssistanceFlag,
		TeamStatus:          a.TeamStatus,
		LastCheckinAt:       a.LastCheckinAt,
		ReferenceTime:       a.TeamStatusUpdated,
	}
}
