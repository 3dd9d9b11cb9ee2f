package request

type CreateTeamRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=255"`
	Description      *string  `json:"description" validate:"omitempty,max=2000"`
	City             *string  `json:"city" validate:"omitempty,max=255"`
	HomeGround       *string  `json:"home_ground" validate:"omitempty,max=255"`
	PreferredFormats []string `json:"preferred_formats" validate:"omitempty,dive,required,max=32"`
	MaxPlayers       int      `json:"max_players" validate:"omitempty,min=1,max=100"`
}

// UpdateTeamRequest is a partial update; absent fields are left unchanged.
type UpdateTeamRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description      *string  `json:"description" validate:"omitempty,max=2000"`
	City             *string  `json:"city" validate:"omitempty,max=255"`
	HomeGround       *string  `json:"home_ground" validate:"omitempty,max=255"`
	PreferredFormats []string `json:"preferred_formats" validate:"omitempty,dive,required,max=32"`
	MaxPlayers       *int     `json:"max_players" validate:"omitempty,min=1,max=100"`
}

type SetSquadFullRequest struct {
	IsSquadFull *bool `json:"is_squad_full" validate:"required"`
}

type RegisterSelfRequest struct {
	FullName string `json:"full_name" validate:"max=255"`
}
