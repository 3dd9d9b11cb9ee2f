package dto

import "time"

type ApplicationDTO struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Message   *string   `json:"message,omitempty"`
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	PlayerID  string    `json:"player_id"`
	Status    string    `json:"status"`
}

type InvitationDTO struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   *string   `json:"message,omitempty"`
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	PlayerID  string    `json:"player_id"`
	InvitedBy string    `json:"invited_by"`
	Status    string    `json:"status"`
}
