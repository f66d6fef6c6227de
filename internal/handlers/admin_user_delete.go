package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=admin_user_delete.go -destination=mock_admin_user_delete.go -package=handlers

// AdminUserDeleter removes a user together with their tasks.
type AdminUserDeleter interface {
	DeleteUser(ctx context.Context, actor *models.User, userID uuid.UUID) error
}

// NewAdminDeleteUserHandler returns an HTTP handler deleting a user and their tasks.
// @Summary Delete user
// @Description Deletes the account and all of its tasks. Administrators cannot delete themselves.
// @Tags admin
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} handlers.MessageResponse "User deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func NewAdminDeleteUserHandler(svc AdminUserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteUser(r.Context(), actor, id); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "User deleted"})
	}
}
