package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/taskboard/internal/services"
)

//go:generate mockgen -source=recovery.go -destination=mock_recovery.go -package=handlers

// RecoveryRequester issues password recovery tokens.
type RecoveryRequester interface {
	RequestRecovery(ctx context.Context, email string) (*services.RecoveryRequest, error)
}

// RecoveryRequest represents the JSON body for a recovery request
// swagger:model RecoveryRequest
type RecoveryRequest struct {
	// Account email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// RecoveryResponse represents an issued recovery token
// swagger:model RecoveryResponse
type RecoveryResponse struct {
	// Success message
	// default: Recovery token sent by email
	Message string `json:"message"`

	// Recovery token, present only when it could not be mailed and
	// RECOVERY_EXPOSE_TOKEN is enabled
	Token string `json:"token,omitempty"`
}

// NewRequestRecoveryHandler returns an HTTP handler that starts password recovery.
// @Summary Request password recovery
// @Description Issues a one-hour recovery token for the account. The token is mailed when SMTP is configured. Otherwise it is logged for the operator, and returned only when RECOVERY_EXPOSE_TOKEN is enabled.
// @Tags auth
// @Accept json
// @Produce json
// @Param recoveryRequest body handlers.RecoveryRequest true "Recovery request"
// @Success 200 {object} handlers.RecoveryResponse "Recovery token issued"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /password/recovery [post]
func NewRequestRecoveryHandler(svc RecoveryRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecoveryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		res, err := svc.RequestRecovery(r.Context(), req.Email)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		switch {
		case res.Delivered:
			writeJSON(w, http.StatusOK, RecoveryResponse{Message: "Recovery token sent by email"})
		case res.Token != "":
			writeJSON(w, http.StatusOK, RecoveryResponse{
				Message: "Recovery token issued",
				Token:   res.Token,
			})
		default:
			writeJSON(w, http.StatusOK, RecoveryResponse{Message: "Recovery token issued, ask an administrator for it"})
		}
	}
}
