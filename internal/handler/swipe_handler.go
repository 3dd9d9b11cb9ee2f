package handler

import (
	"context"
	"net/http"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/mapper"
	"recruitment-service/internal/response"

	"github.com/go-chi/chi/v5"
)

type SwipeService interface {
	SwipeApplication(ctx context.Context, caller domain.Identity, teamID string) (*domain.ApplicationSwipe, error)
	SwipeInvite(ctx context.Context, caller domain.Identity, playerID string) (*domain.InvitationSwipe, error)
}

type SwipeHandler struct {
	service SwipeService
}

func NewSwipeHandler(service SwipeService) *SwipeHandler {
	return &SwipeHandler{service: service}
}

// SwipeTeam godoc
// @Summary Player swipes right on a team
// @Description Records an application unless one already exists for the pair, and reports whether the team has a live invitation for the caller.
// @Tags Swipes
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Success 200 {object} response.ApplicationSwipeResponse "Swipe recorded"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Player role required"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /swipe/teams/{teamID} [post]
func (h *SwipeHandler) SwipeTeam(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	swipe, err := h.service.SwipeApplication(r.Context(), caller, chi.URLParam(r, "teamID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.ApplicationSwipeResponse{
		Matched:     swipe.Matched,
		Created:     swipe.Created,
		Application: mapper.MapDomainApplicationToDTO(swipe.Application),
	})
}

// SwipePlayer godoc
// @Summary Captain swipes right on a player
// @Description Records an invitation from the captain's team unless one already exists for the pair, and reports whether the player has a pending application to that team.
// @Tags Swipes
// @Produce json
// @Security BearerAuth
// @Param playerID path string true "Player ID"
// @Success 200 {object} response.InvitationSwipeResponse "Swipe recorded"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Captain role required"
// @Failure 404 {object} dto.ErrorResponse "Captain has no team or player not found"
// @Router /swipe/players/{playerID} [post]
func (h *SwipeHandler) SwipePlayer(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	swipe, err := h.service.SwipeInvite(r.Context(), caller, chi.URLParam(r, "playerID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.InvitationSwipeResponse{
		Matched:    swipe.Matched,
		Created:    swipe.Created,
		Invitation: mapper.MapDomainInvitationToDTO(swipe.Invitation),
	})
}
