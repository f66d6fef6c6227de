package handlers

import (
	"context"
	"net/http"
)

//go:generate mockgen -source=reset_password.go -destination=mock_reset_password.go -package=handlers

// PasswordResetter consumes recovery tokens.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// ResetPasswordRequest represents the JSON body for a password reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Recovery token
	// required: true
	// default: 9f2c4e...
	Token string `json:"token"`

	// New password, 6 characters to 72 bytes
	// required: true
	// default: Secret456!
	NewPassword string `json:"new_password"`
}

// NewResetPasswordHandler returns an HTTP handler that sets a new password from a recovery token.
// @Summary Reset password
// @Description Consumes a valid recovery token, sets the new password and ends existing sessions
// @Tags auth
// @Accept json
// @Produce json
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "Password reset request"
// @Success 200 {object} handlers.MessageResponse "Password reset"
// @Failure 400 {object} handlers.ErrorResponse "Invalid or expired recovery token / invalid password"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /password/reset [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Password reset successfully"})
	}
}
