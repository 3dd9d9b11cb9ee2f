package dto

import "time"

type TeamDTO struct {
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	TeamID             string    `json:"team_id"`
	Name               string    `json:"name"`
	CaptainID          string    `json:"captain_id"`
	Description        *string   `json:"description,omitempty"`
	City               *string   `json:"city,omitempty"`
	HomeGround         *string   `json:"home_ground,omitempty"`
	PreferredFormats   []string  `json:"preferred_formats"`
	MaxPlayers         int       `json:"max_players"`
	CurrentPlayerCount int       `json:"current_player_count"`
	IsSquadFull        bool      `json:"is_squad_full"`
}

type UserDTO struct {
	UserID   string   `json:"user_id"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
	IsActive bool     `json:"is_active"`
}
