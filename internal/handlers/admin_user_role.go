package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=admin_user_role.go -destination=mock_admin_user_role.go -package=handlers

// AdminRoleSetter grants or revokes admin rights.
type AdminRoleSetter interface {
	SetAdmin(ctx context.Context, actor *models.User, userID uuid.UUID, isAdmin bool) (*models.User, error)
}

// SetAdminRequest represents the JSON body for a role change
// swagger:model SetAdminRequest
type SetAdminRequest struct {
	// Admin flag
	// required: true
	// default: true
	IsAdmin *bool `json:"is_admin"`
}

// NewAdminSetRoleHandler returns an HTTP handler promoting or demoting a user.
// @Summary Promote or demote user
// @Description Administrators cannot revoke their own rights
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param setAdminRequest body handlers.SetAdminRequest true "Role"
// @Success 200 {object} models.User "Updated user"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/admin [patch]
func NewAdminSetRoleHandler(svc AdminRoleSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req SetAdminRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.IsAdmin == nil {
			writeError(w, http.StatusBadRequest, "is_admin is required")
			return
		}

		user, err := svc.SetAdmin(r.Context(), actor, id, *req.IsAdmin)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
