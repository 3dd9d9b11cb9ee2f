package response

import (
	"recruitment-service/internal/dto"
)

type TeamResponse struct {
	Team dto.TeamDTO `json:"team"`
}

type UserResponse struct {
	User dto.UserDTO `json:"user"`
}
