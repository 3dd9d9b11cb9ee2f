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

type ApplicationService interface {
	Apply(ctx context.Context, caller domain.Identity, teamID string, message *string) (*domain.Application, error)
	Withdraw(ctx context.Context, caller domain.Identity, applicationID string) (*domain.Application, error)
	ListApplications(ctx context.Context, caller domain.Identity, teamID string) ([]domain.Application, error)
	ListMyApplications(ctx context.Context, caller domain.Identity) ([]domain.Application, error)
	Approve(ctx context.Context, caller domain.Identity, applicationID string) (*domain.Application, error)
	Reject(ctx context.Context, caller domain.Identity, applicationID string) (*domain.Application, error)
}

type ApplicationHandler struct {
	service   ApplicationService
	validator *validator.Validate
}

func NewApplicationHandler(service ApplicationService, validator *validator.Validate) *ApplicationHandler {
	return &ApplicationHandler{
		service:   service,
		validator: validator,
	}
}

// Apply godoc
// @Summary Apply to a team
// @Description Create a pending application from the calling player. At most one pending application per team and player.
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Param request body request.ApplyRequest false "Optional message"
// @Success 201 {object} response.ApplicationResponse "Application created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Player role required"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Failure 409 {object} dto.ErrorResponse "Pending application already exists"
// @Router /teams/{teamID}/apply [post]
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.ApplyRequest
	if !decodeOptional(w, r, h.validator, &req) {
		return
	}

	app, err := h.service.Apply(r.Context(), caller, chi.URLParam(r, "teamID"), req.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, response.ApplicationResponse{
		Application: mapper.MapDomainApplicationToDTO(app),
	})
}

// ListApplications godoc
// @Summary List team applications
// @Description List every application to the team, newest first. Captain only.
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID"
// @Success 200 {object} response.ApplicationsResponse "Applications retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the team captain"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{teamID}/applications [get]
func (h *ApplicationHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	apps, err := h.service.ListApplications(r.Context(), caller, chi.URLParam(r, "teamID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.ApplicationsResponse{
		Applications: mapper.MapDomainApplicationsToDTO(apps),
		Count:        len(apps),
	})
}

// ListMyApplications godoc
// @Summary List the caller's applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApplicationsResponse "Applications retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Player role required"
// @Router /players/me/applications [get]
func (h *ApplicationHandler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	apps, err := h.service.ListMyApplications(r.Context(), caller)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.ApplicationsResponse{
		Applications: mapper.MapDomainApplicationsToDTO(apps),
		Count:        len(apps),
	})
}

// Approve godoc
// @Summary Approve an application
// @Description Accept a pending application and add the player to the roster in one step. Fails when the roster is at capacity or the squad is marked full.
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param applicationID path string true "Application ID"
// @Success 200 {object} response.ApplicationResponse "Application accepted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the team captain"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Not pending or capacity exceeded"
// @Router /applications/{applicationID}/approve [post]
func (h *ApplicationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Approve)
}

// Reject godoc
// @Summary Reject an application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param applicationID path string true "Application ID"
// @Success 200 {object} response.ApplicationResponse "Application rejected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the team captain"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application is not pending"
// @Router /applications/{applicationID}/reject [post]
func (h *ApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Reject)
}

// Withdraw godoc
// @Summary Withdraw an application
// @Description The applying player withdraws a pending application.
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param applicationID path string true "Application ID"
// @Success 200 {object} response.ApplicationResponse "Application withdrawn"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the applicant"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application is not pending"
// @Router /applications/{applicationID} [delete]
func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Withdraw)
}

func (h *ApplicationHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, caller domain.Identity, applicationID string) (*domain.Application, error),
) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	app, err := action(r.Context(), caller, chi.URLParam(r, "applicationID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.ApplicationResponse{
		Application: mapper.MapDomainApplicationToDTO(app),
	})
}
