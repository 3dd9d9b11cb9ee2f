package handler

import (
	"context"
	"net/http"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/mapper"
	"recruitment-service/internal/request"
	"recruitment-service/internal/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type TeamService interface {
	CreateTeam(ctx context.Context, caller domain.Identity, team *domain.Team) (*domain.Team, error)
	GetTeam(ctx context.Context, teamID string) (*domain.Team, error)
	UpdateTeam(ctx context.Context, caller domain.Identity, teamID string, patch domain.TeamPatch) (*domain.Team, error)
	SetSquadFull(ctx context.Context, caller domain.Identity, teamID string, isFull bool) (*domain.Team, error)
}

type TeamHandler struct {
	service   TeamService
	validator *validator.Validate
}

func NewTeamHandler(service TeamService, validator *validator.Validate) *TeamHandler {
	return &TeamHandler{
		service:   service,
		validator: validator,
	}
}

// CreateTeam godoc
// @Summary Create a team
// @Description Create a team captained by the caller. The roster starts empty.
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateTeamRequest true "Team creation request"
// @Success 201 {object} response.TeamResponse "Team created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Captain role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.CreateTeamRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	created, err := h.service.CreateTeam(r.Context(), caller, mapper.MapCreateTeamRequestToDomain(&req))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, response.TeamResponse{
		Team: mapper.MapDomainTeamToDTO(created),
	})
}

// GetTeam godoc
// @Summary Get team by ID
// @Description Get team profile and roster counters
// @Tags Teams
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Success 200 {object} response.TeamResponse "Team retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{teamID} [get]
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.service.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.TeamResponse{
		Team: mapper.MapDomainTeamToDTO(team),
	})
}

// UpdateTeam godoc
// @Summary Update team profile
// @Description Partially update a team. Only the captain may update it, and max_players cannot drop below the roster size.
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Param request body request.UpdateTeamRequest true "Fields to change"
// @Success 200 {object} response.TeamResponse "Team updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the team captain"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{teamID} [patch]
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.UpdateTeamRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	team, err := h.service.UpdateTeam(r.Context(), caller, chi.URLParam(r, "teamID"), mapper.MapUpdateTeamRequestToPatch(&req))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.TeamResponse{
		Team: mapper.MapDomainTeamToDTO(team),
	})
}

// SetSquadFull godoc
// @Summary Mark squad full or open
// @Description Set the captain's manual squad-full flag. A full squad accepts no further approvals.
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Param request body request.SetSquadFullRequest true "Squad flag"
// @Success 200 {object} response.TeamResponse "Flag updated"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the team captain"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{teamID}/squad-full [post]
func (h *TeamHandler) SetSquadFull(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.SetSquadFullRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	team, err := h.service.SetSquadFull(r.Context(), caller, chi.URLParam(r, "teamID"), *req.IsSquadFull)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.TeamResponse{
		Team: mapper.MapDomainTeamToDTO(team),
	})
}
