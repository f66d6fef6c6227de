package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/services"
	"github.com/sbilibin2017/taskboard/internal/validation"
)

//go:generate mockgen -source=password.go -destination=mock_password.go -package=handlers

// PasswordChanger defines the interface for changing one's own password.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	// default: secret123
	OldPassword string `json:"old_password"`

	// New password, 6 characters to 72 bytes
	// required: true
	// default: Secret456!
	NewPassword string `json:"new_password"`
}

// PasswordResponse confirms a password change
// swagger:model PasswordResponse
type PasswordResponse struct {
	// Success message
	// default: Password changed successfully
	Message string `json:"message"`

	// Password strength rating
	// default: strong
	PasswordStrength validation.Strength `json:"password_strength"`
}

// NewChangePasswordHandler returns an HTTP handler for changing the caller's password.
// @Summary Change password
// @Description Verifies the current password and sets a new one. The session stays valid.
// @Tags auth
// @Accept json
// @Produce json
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Password change request"
// @Success 200 {object} handlers.PasswordResponse "Password changed"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request or wrong current password"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /me/password [put]
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req ChangePasswordRequest
		if !decodeBody(w, r, &req) {
			return
		}

		err := svc.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword)
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "Current password is incorrect")
			return
		case err != nil:
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, PasswordResponse{
			Message:          "Password changed successfully",
			PasswordStrength: validation.PasswordStrength(req.NewPassword),
		})
	}
}
