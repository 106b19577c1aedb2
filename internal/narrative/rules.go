package narrative

import (
	"github.com/saturnino-fabrica-de-software/vigia/internal/bus"
)

// DefaultTemplates maps each topic to the narrative text it produces.
// Topics absent from the table are consumed and discarded without error.
func DefaultTemplates() map[bus.Topic]string {
	return map[bus.Topic]string{
		bus.TopicPersonnelCheckin:  "Team {team_name} checked in via {method}",
		bus.TopicTeamStatusChange:  "Team {team_name} status changed from {old_status} to {new_status}",
		bus.TopicICS213Sent:        "ICS-213 message sent from {from} to {to}: {subject}",
		bus.TopicObjectiveApproved: "Objective {objective_code} approved: {description}",
		bus.TopicTimeMilestone:     "Time milestone recorded for {personnel_name}: {milestone}",
		bus.TopicReadinessChanged:  "Team {team_name} readiness changed from {previous} to {current}",
	}
}
