package domain

import "time"

const DefaultMaxPlayers = 15

type Team struct {
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

// HasCapacity reports whether one more acceptance fits on the roster.
func (t *Team) HasCapacity() bool {
	return !t.IsSquadFull && t.CurrentPlayerCount < t.MaxPlayers
}

// TeamPatch carries the optional fields of a team update. Nil means "leave as is".
type TeamPatch struct {
	Name             *string
	Description      *string
	City             *string
	HomeGround       *string
	PreferredFormats []string
	MaxPlayers       *int
}

func (p TeamPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.City == nil &&
		p.HomeGround == nil && p.PreferredFormats == nil && p.MaxPlayers == nil
}

// Apply assigns every supplied field onto t. A max_players at or below the
// current count marks the squad full; the flag is never cleared here.
func (p TeamPatch) Apply(t *Team) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.City != nil {
		t.City = p.City
	}
	if p.HomeGround != nil {
		t.HomeGround = p.HomeGround
	}
	if p.PreferredFormats != nil {
		t.PreferredFormats = p.PreferredFormats
	}
	if p.MaxPlayers != nil {
		t.MaxPlayers = *p.MaxPlayers
		if t.CurrentPlayerCount >= t.MaxPlayers {
			t.IsSquadFull = true
		}
	}
}
