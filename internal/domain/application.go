package domain

import "time"

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// applicationTransitions lists the legal targets per source status.
// Terminal statuses have no entry.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending: {ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn},
}

func (s ApplicationStatus) IsTerminal() bool {
	return len(applicationTransitions[s]) == 0
}

func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, t := range applicationTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

type Application struct {
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Message   *string           `json:"message,omitempty"`
	ID        string            `json:"id"`
	TeamID    string            `json:"team_id"`
	PlayerID  string            `json:"player_id"`
	Status    ApplicationStatus `json:"status"`
}
