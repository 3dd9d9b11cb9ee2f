package domain

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

var invitationTransitions = map[InvitationStatus][]InvitationStatus{
	InvitationPending: {InvitationAccepted, InvitationDeclined, InvitationExpired},
}

func (s InvitationStatus) IsTerminal() bool {
	return len(invitationTransitions[s]) == 0
}

func (s InvitationStatus) CanTransitionTo(target InvitationStatus) bool {
	for _, t := range invitationTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// InvitationDecision is the invitee's answer to a pending invitation.
type InvitationDecision string

const (
	DecisionAccept  InvitationDecision = "accept"
	DecisionDecline InvitationDecision = "decline"
)

func (d InvitationDecision) Status() (InvitationStatus, bool) {
	switch d {
	case DecisionAccept:
		return InvitationAccepted, true
	case DecisionDecline:
		return InvitationDeclined, true
	}
	return "", false
}

type Invitation struct {
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	ExpiresAt time.Time        `json:"expires_at"`
	Message   *string          `json:"message,omitempty"`
	ID        string           `json:"id"`
	TeamID    string           `json:"team_id"`
	PlayerID  string           `json:"player_id"`
	InvitedBy string           `json:"invited_by"`
	Status    InvitationStatus `json:"status"`
}

// IsLapsed reports a pending invitation whose deadline has passed at now.
func (i *Invitation) IsLapsed(now time.Time) bool {
	return i.Status == InvitationPending && !now.Before(i.ExpiresAt)
}

// EffectiveStatus is the status every reader must observe: a lapsed pending
// invitation reads as expired even before the row is corrected.
func (i *Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.IsLapsed(now) {
		return InvitationExpired
	}
	return i.Status
}

// IsLive reports a pending invitation that can still be answered.
func (i *Invitation) IsLive(now time.Time) bool {
	return i.EffectiveStatus(now) == InvitationPending
}

// Normalize rewrites the in-memory status with the expiry rule applied.
func (i *Invitation) Normalize(now time.Time) {
	i.Status = i.EffectiveStatus(now)
}
