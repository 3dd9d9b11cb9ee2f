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

type UserService interface {
	RegisterSelf(ctx context.Context, caller domain.Identity, fullName string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
}

func NewUserHandler(userService UserService, validator *validator.Validate) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// RegisterSelf godoc
// @Summary Register the calling user
// @Description Create or refresh the caller's user record from the token identity. Players must register before captains can invite them.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.RegisterSelfRequest true "Profile"
// @Success 200 {object} response.UserResponse "User registered"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me [post]
func (h *UserHandler) RegisterSelf(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.RegisterSelfRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.userService.RegisterSelf(r.Context(), caller, req.FullName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.UserResponse{
		User: mapper.MapDomainUserToDTO(user),
	})
}

// GetUser godoc
// @Summary Get user by ID
// @Description Look up a registered user, for example to check a player before inviting them.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} response.UserResponse "User retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userID} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response.UserResponse{
		User: mapper.MapDomainUserToDTO(user),
	})
}
