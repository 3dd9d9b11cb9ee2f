package response

import (
	"recruitment-service/internal/dto"
)

type ApplicationResponse struct {
	Application dto.ApplicationDTO `json:"application"`
}

type ApplicationsResponse struct {
	Applications []dto.ApplicationDTO `json:"applications"`
	Count        int                  `json:"count"`
}

type InvitationResponse struct {
	Invitation dto.InvitationDTO `json:"invitation"`
}

type InvitationsResponse struct {
	Invitations []dto.InvitationDTO `json:"invitations"`
	Count       int                 `json:"count"`
}

type ApplicationSwipeResponse struct {
	Matched     bool               `json:"matched"`
	Created     bool               `json:"created"`
	Application dto.ApplicationDTO `json:"application"`
}

type InvitationSwipeResponse struct {
	Matched    bool              `json:"matched"`
	Created    bool              `json:"created"`
	Invitation dto.InvitationDTO `json:"invitation"`
}
