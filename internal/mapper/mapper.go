package mapper

import (
	"recruitment-service/internal/domain"
	"recruitment-service/internal/dto"
	"recruitment-service/internal/request"
)

// Team mappers
func MapDomainTeamToDTO(team *domain.Team) dto.TeamDTO {
	formats := team.PreferredFormats
	if formats == nil {
		formats = []string{}
	}
	return dto.TeamDTO{
		CreatedAt:          team.CreatedAt,
		UpdatedAt:          team.UpdatedAt,
		TeamID:             team.TeamID,
		Name:               team.Name,
		CaptainID:          team.CaptainID,
		Description:        team.Description,
		City:               team.City,
		HomeGround:         team.HomeGround,
		PreferredFormats:   formats,
		MaxPlayers:         team.MaxPlayers,
		CurrentPlayerCount: team.CurrentPlayerCount,
		IsSquadFull:        team.IsSquadFull,
	}
}

func MapCreateTeamRequestToDomain(req *request.CreateTeamRequest) *domain.Team {
	return &domain.Team{
		Name:             req.Name,
		Description:      req.Description,
		City:             req.City,
		HomeGround:       req.HomeGround,
		PreferredFormats: req.PreferredFormats,
		MaxPlayers:       req.MaxPlayers,
	}
}

func MapUpdateTeamRequestToPatch(req *request.UpdateTeamRequest) domain.TeamPatch {
	return domain.TeamPatch{
		Name:             req.Name,
		Description:      req.Description,
		City:             req.City,
		HomeGround:       req.HomeGround,
		PreferredFormats: req.PreferredFormats,
		MaxPlayers:       req.MaxPlayers,
	}
}

// User mappers
func MapDomainUserToDTO(user *domain.User) dto.UserDTO {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}
	return dto.UserDTO{
		UserID:   user.UserID,
		FullName: user.FullName,
		Roles:    roles,
		IsActive: user.IsActive,
	}
}

// Proposal mappers
func MapDomainApplicationToDTO(app *domain.Application) dto.ApplicationDTO {
	return dto.ApplicationDTO{
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
		Message:   app.Message,
		ID:        app.ID,
		TeamID:    app.TeamID,
		PlayerID:  app.PlayerID,
		Status:    string(app.Status),
	}
}

func MapDomainApplicationsToDTO(apps []domain.Application) []dto.ApplicationDTO {
	result := make([]dto.ApplicationDTO, len(apps))
	for i := range apps {
		result[i] = MapDomainApplicationToDTO(&apps[i])
	}
	return result
}

func MapDomainInvitationToDTO(inv *domain.Invitation) dto.InvitationDTO {
	return dto.InvitationDTO{
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
		ExpiresAt: inv.ExpiresAt,
		Message:   inv.Message,
		ID:        inv.ID,
		TeamID:    inv.TeamID,
		PlayerID:  inv.PlayerID,
		InvitedBy: inv.InvitedBy,
		Status:    string(inv.Status),
	}
}

func MapDomainInvitationsToDTO(invs []domain.Invitation) []dto.InvitationDTO {
	result := make([]dto.InvitationDTO, len(invs))
	for i := range invs {
		result[i] = MapDomainInvitationToDTO(&invs[i])
	}
	return result
}
