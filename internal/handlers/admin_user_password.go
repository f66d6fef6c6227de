package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=admin_user_password.go -destination=mock_admin_user_password.go -package=handlers

// AdminPasswordResetter sets another user's password.
type AdminPasswordResetter interface {
	ResetUserPassword(ctx context.Context, actor *models.User, userID uuid.UUID, newPassword string) error
}

// AdminResetPasswordRequest represents the JSON body for an admin password reset
// swagger:model AdminResetPasswordRequest
type AdminResetPasswordRequest struct {
	// New password
	// required: true
	// default: changeme1
	NewPassword string `json:"new_password"`
}

// NewAdminResetPasswordHandler returns an HTTP handler resetting a user's password.
// @Summary Reset user password
// @Description Sets a new password and ends the user's session
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param adminResetPasswordRequest body handlers.AdminResetPasswordRequest true "Password"
// @Success 200 {object} handlers.MessageResponse "Password reset"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/password [put]
func NewAdminResetPasswordHandler(svc AdminPasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req AdminResetPasswordRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := svc.ResetUserPassword(r.Context(), actor, id, req.NewPassword); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Password reset successfully"})
	}
}
