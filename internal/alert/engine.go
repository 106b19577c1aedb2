package alert

import (
	"strings"
	"time"
)

// Engine classifies team readiness snapshots. It holds only immutable
// configuration; Evaluate is pure and safe for concurrent use.
type Engine struct {
	thresholds Thresholds
	ineligible map[string]struct{}
}

// NewEngine creates an engine. Zero thresholds fall back to the 50/60
// defaults; an empty ineligible set falls back to {"staged"}. Statuses
// representing teams not yet deployed never age into check-in alerts.
func NewEngine(thresholds Thresholds, ineligibleStatuses []string) *Engine {
	defaults := DefaultThresholds()
	if thresholds.WarningMinutes <= 0 {
		thresholds.WarningMinutes = defaults.WarningMinutes
	}
	if thresholds.OverdueMinutes <= 0 {
		thresholds.OverdueMinutes = defaults.OverdueMinutes
	}
	if len(ineligibleStatuses) == 0 {
		ineligibleStatuses = []string{"staged"}
	}

	ineligible := make(map[string]struct{}, len(ineligibleStatuses))
	for _, status := range ineligibleStatuses {
		ineligible[normalizeStatus(status)] = struct{}{}
	}

	return &Engine{
		thresholds: thresholds,
		ineligible: ineligible,
	}
}

// Evaluate classifies one snapshot at the given instant. Checks apply
// in strict precedence: the emergency flag beats everything, the
// assistance flag beats status and timing, an ineligible status
// suppresses timing alerts, and only then does check-in age matter.
// Absent or ambiguous fields degrade to KindNone, never to an error.
func (e *Engine) Evaluate(state State, now time.Time) Kind {
	if state.EmergencyFlag {
		return KindEmergency
	}

	if state.NeedsAssistanceFlag {
		return KindNeedsAssistance
	}

	if _, ok := e.ineligible[normalizeStatus(state.TeamStatus)]; ok {
		return KindNone
	}

	reference := state.LastCheckinAt
	if reference == nil {
		reference = state.ReferenceTime
	}
	if reference == nil {
		return KindNone
	}

	elapsed := now.Sub(*reference).Minutes()

	switch {
	case elapsed >= e.thresholds.OverdueMinutes:
		return KindCheckinOverdue
	case elapsed >= e.thresholds.WarningMinutes:
		return KindCheckinWarning
	default:
		return KindNone
	}
}

// normalizeStatus lowercases the status and collapses any run of
// whitespace to a single space.
func normalizeStatus(status string) string {
	return strings.Join(strings.Fields(strings.ToLower(status)), " ")
}
