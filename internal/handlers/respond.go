package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/logger"
	"github.com/sbilibin2017/taskboard/internal/middlewares"
	"github.com/sbilibin2017/taskboard/internal/models"
	"github.com/sbilibin2017/taskboard/internal/services"
	"github.com/sbilibin2017/taskboard/internal/validation"
)

// ErrorResponse is returned by every endpoint on failure
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// MessageResponse is a plain confirmation
// swagger:model MessageResponse
type MessageResponse struct {
	// Success message
	// default: OK
	Message string `json:"message"`
}

const (
	msgInvalidBody   = "Invalid request body"
	msgInvalidID     = "Invalid id"
	msgUnauthorized  = "Unauthorized"
	msgInternalError = "Internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps a service error onto a status code and message.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case validation.IsInputError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status, expected ToDo, Doing or Done")
	case errors.Is(err, services.ErrInvalidRecoveryToken):
		writeError(w, http.StatusBadRequest, "Invalid or expired recovery token")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrSelfDeletion):
		writeError(w, http.StatusForbidden, "You cannot delete your own account")
	case errors.Is(err, services.ErrSelfDemotion):
		writeError(w, http.StatusForbidden, "You cannot revoke your own admin rights")
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, "Username or email already exists")
	case errors.Is(err, services.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "Too many failed login attempts, try again later")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// currentUser returns the authenticated user or writes 401.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := middlewares.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return nil, false
	}
	return user, true
}

// pathID parses the {id} route parameter or writes 400.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
