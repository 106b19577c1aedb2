package bus

// Topic identifies an event stream on the bus.
type Topic string

const (
	// TopicPersonnelCheckin carries team check-in events from the field.
	TopicPersonnelCheckin Topic = "personnel.checkin"

	// TopicTeamStatusChange carries operational status transitions for a team.
	TopicTeamStatusChange Topic = "operations.team_status_change"

	// TopicICS213Sent carries sent ICS-213 general message forms.
	TopicICS213Sent Topic = "communications.ics213_sent"

	// TopicObjectiveApproved carries approved planning objectives.
	TopicObjectiveApproved Topic = "planning.objective_approved"

	// TopicTimeMilestone carries personnel time tracking milestones.
	TopicTimeMilestone Topic = "finance.time_milestone"

	// TopicReadinessChanged carries team readiness alert transitions
	// produced by the readiness worker.
	TopicReadinessChanged Topic = "readiness.alert_changed"
)

// Registry returns the fixed set of topics consumed by the narrative
// pipeline, in consumer startup order.
func Registry() []Topic {
	return []Topic{
		TopicPersonnelCheckin,
		TopicTeamStatusChange,
		TopicICS213Sent,
		TopicObjectiveApproved,
		TopicTimeMilestone,
		TopicReadinessChanged,
	}
}

// String returns the topic name.
func (t Topic) String() string {
	return string(t)
}
