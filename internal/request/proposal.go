package request

type ApplyRequest struct {
	Message *string `json:"message" validate:"omitempty,max=1000"`
}

type InviteRequest struct {
	PlayerID string  `json:"player_id" validate:"required,min=1,max=255"`
	Message  *string `json:"message" validate:"omitempty,max=1000"`
}

type RespondInvitationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept decline"`
}
