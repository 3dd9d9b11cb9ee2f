package dto

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeTeamFull          = "TEAM_FULL"
	ErrCodeCapacityExceeded  = "CAPACITY_EXCEEDED"
	ErrCodeDuplicateProposal = "DUPLICATE_PROPOSAL"
	ErrCodeInvitationExpired = "INVITATION_EXPIRED"
	ErrCodeNoTeam            = "NO_TEAM"
	ErrCodeInternal          = "INTERNAL"
)
