package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=task_delete.go -destination=mock_task_delete.go -package=handlers

// TaskDeleter removes tasks.
type TaskDeleter interface {
	Delete(ctx context.Context, actor *models.User, id uuid.UUID) error
}

// NewDeleteTaskHandler returns an HTTP handler deleting a task.
// @Summary Delete task
// @Tags tasks
// @Produce json
// @Param id path string true "Task id"
// @Success 200 {object} handlers.MessageResponse "Task deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func NewDeleteTaskHandler(svc TaskDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), user, id); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Task deleted"})
	}
}
