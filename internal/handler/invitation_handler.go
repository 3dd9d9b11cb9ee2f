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

type InvitationService interface {
	Invite(ctx context.Context, caller domain.Identity, teamID, playerID string, message *string) (*domain.Invitation, error)
	Respond(ctx context.Context, caller domain.Identity, invitationID string, decision domain.InvitationDecision) (*domain.Invitation, error)
	GetInvitation(ctx context.Context, caller domain.Identity, invitationID string) (*domain.Invitation, error)
	ListMyInvitations(ctx context.Context, caller domain.Identity) ([]domain.Invitation, error)
	ListTeamInvitations(ctx context.Context, caller domain.Identity, teamID string) ([]domain.Invitation, error)
}

type InvitationHandler struct {
	service   InvitationService
	validator *validator.Validate
}

func NewInvitationHandler(service InvitationService, validator *validator.Validate) *InvitationHandler {
	return &InvitationHandler{
		service:   service,
		validator: validator,
	}
}

// Invite godoc
// @Summary Invite a player
// @Description Captain invites a registered player. The invitation expires after the configured TTL.
// @Tags Invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Param request body request.InviteRequest true "Invitation request"
// @Success 201 {object} response.InvitationResponse "Invitation created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the team captain"
// @Failure 404 {object} dto.ErrorResponse "Team or player not found"
// @Failure 409 {object} dto.ErrorResponse "Team full or pending invitation exists"
// @Router /teams/{teamID}/invite [post]
func (h *InvitationHandler) Invite(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.InviteRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	inv, err := h.service.Invite(r.Context(), caller, chi.URLParam(r, "teamID"), req.PlayerID, req.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, response.InvitationResponse{
		Invitation: mapper.MapDomainInvitationToDTO(inv),
	})
}

// Respond godoc
// @Summary Respond to an invitation
// @Description The invited player accepts or declines a pending invitation. A lapsed invitation is marked expired instead.
// @Tags Invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID"
// @Param request body request.RespondInvitationRequest true "Decision"
// @Success 200 {object} response.InvitationResponse "Invitation updated"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the invited player"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 409 {object} dto.ErrorResponse "Invitation is not pending"
// @Failure 410 {object} dto.ErrorResponse "Invitation expired"
// @Router /invitations/{invitationID} [put]
func (h *InvitationHandler) Respond(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.RespondInvitationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	inv, err := h.service.Respond(r.Context(), caller, chi.URLParam(r, "invitationID"), domain.InvitationDecision(req.Decision))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.InvitationResponse{
		Invitation: mapper.MapDomainInvitationToDTO(inv),
	})
}

// GetInvitation godoc
// @Summary Get invitation by ID
// @Description Visible to the invited player and the team captain. Lapsed invitations are reported as expired.
// @Tags Invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID"
// @Success 200 {object} response.InvitationResponse "Invitation retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a party to the invitation"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Router /invitations/{invitationID} [get]
func (h *InvitationHandler) GetInvitation(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	inv, err := h.service.GetInvitation(r.Context(), caller, chi.URLParam(r, "invitationID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.InvitationResponse{
		Invitation: mapper.MapDomainInvitationToDTO(inv),
	})
}

// ListMyInvitations godoc
// @Summary List the caller's live invitations
// @Description Pending invitations that have not lapsed.
// @Tags Invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.InvitationsResponse "Invitations retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Player role required"
// @Router /players/me/invitations [get]
func (h *InvitationHandler) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	invs, err := h.service.ListMyInvitations(r.Context(), caller)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.InvitationsResponse{
		Invitations: mapper.MapDomainInvitationsToDTO(invs),
		Count:       len(invs),
	})
}

// ListTeamInvitations godoc
// @Summary List team invitations
// @Description Every invitation the team has sent, newest first. Captain only.
// @Tags Invitations
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Success 200 {object} response.InvitationsResponse "Invitations retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the team captain"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{teamID}/invitations [get]
func (h *InvitationHandler) ListTeamInvitations(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	invs, err := h.service.ListTeamInvitations(r.Context(), caller, chi.URLParam(r, "teamID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.InvitationsResponse{
		Invitations: mapper.MapDomainInvitationsToDTO(invs),
		Count:       len(invs),
	})
}
