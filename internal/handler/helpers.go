package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/dto"
	"recruitment-service/internal/middleware"
	"recruitment-service/internal/my_errors"

	"github.com/go-playground/validator/v10"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondWithError(w, status, &dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func respondWithError(w http.ResponseWriter, status int, errResp *dto.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		slog.Warn("failed to encode error response", "error", err)
	}
}

// errorMappings is checked in order; specific errors come before their kinds.
var errorMappings = []struct {
	err    error
	status int
	code   string
}{
	{my_errors.ErrInvitationExpired, http.StatusGone, dto.ErrCodeInvitationExpired},
	{my_errors.ErrCapacityExceeded, http.StatusConflict, dto.ErrCodeCapacityExceeded},
	{my_errors.ErrTeamFull, http.StatusConflict, dto.ErrCodeTeamFull},
	{my_errors.ErrDuplicateProposal, http.StatusConflict, dto.ErrCodeDuplicateProposal},
	{my_errors.ErrInvalidTransition, http.StatusConflict, dto.ErrCodeInvalidTransition},
	{my_errors.ErrNoTeam, http.StatusNotFound, dto.ErrCodeNoTeam},
	{my_errors.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
	{my_errors.ErrForbidden, http.StatusForbidden, dto.ErrCodeForbidden},
	{my_errors.ErrInvalidInput, http.StatusBadRequest, dto.ErrCodeInvalidInput},
	{my_errors.ErrEmptyField, http.StatusBadRequest, dto.ErrCodeInvalidInput},
}

// respondServiceError maps a service error onto its stable code.
func respondServiceError(w http.ResponseWriter, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			respondError(w, m.status, m.code, err.Error())
			return
		}
	}
	slog.Error("unhandled service error", "error", err)
	respondError(w, http.StatusInternalServerError, dto.ErrCodeInternal, "internal server error")
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes the
// error response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}) bool {
	return decode(w, r, v, dst, false)
}

// decodeOptional is decodeAndValidate for bodies that may be absent. An empty
// body, including an empty chunked one, leaves dst at its zero value.
func decodeOptional(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}) bool {
	return decode(w, r, v, dst, true)
}

func decode(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}, optional bool) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !optional || !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, dto.ErrCodeInvalidInput, "invalid request body")
			return false
		}
	}

	if err := v.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, dto.ErrCodeInvalidInput, "validation error: "+err.Error())
		return false
	}
	return true
}

func callerFrom(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "missing caller identity")
	}
	return identity, ok
}
