package my_errors

import "errors"

// Sentinel errors for recruitment business logic
var (
	// Not found
	ErrNotFound            = errors.New("not found")
	ErrUserNotFound        = kind(ErrNotFound, "user not found")
	ErrPlayerNotFound      = kind(ErrNotFound, "player not found")
	ErrTeamNotFound        = kind(ErrNotFound, "team not found")
	ErrApplicationNotFound = kind(ErrNotFound, "application not found")
	ErrInvitationNotFound  = kind(ErrNotFound, "invitation not found")

	// Authorization
	ErrForbidden  = errors.New("forbidden")
	ErrNotCaptain = kind(ErrForbidden, "only the team captain can do this")
	ErrNotOwner   = kind(ErrForbidden, "caller does not own this proposal")
	ErrWrongRole  = kind(ErrForbidden, "caller lacks the required role")

	// Proposal lifecycle
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrDuplicateProposal  = errors.New("a pending proposal already exists for this team and player")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrNoTeam             = errors.New("captain has no team")
	ErrTeamFull           = errors.New("team squad is full")
	ErrCapacityExceeded   = errors.New("team roster capacity exceeded")
	ErrMaxBelowRosterSize = kind(ErrInvalidInput, "max_players cannot be lower than current player count")

	// Auth
	ErrInvalidToken = errors.New("invalid token")

	// Validation
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyField   = errors.New("required field is empty")
)

// kindError is a specific error that also matches its broader kind with errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func kind(k error, msg string) error {
	return &kindError{kind: k, msg: msg}
}
