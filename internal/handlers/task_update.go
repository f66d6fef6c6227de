package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=task_update.go -destination=mock_task_update.go -package=handlers

// TaskDetailsUpdater edits title and description.
type TaskDetailsUpdater interface {
	UpdateDetails(ctx context.Context, actor *models.User, id uuid.UUID, title, description string) (*models.Task, error)
}

// NewUpdateTaskHandler returns an HTTP handler editing a task.
// @Summary Update task
// @Description Non-empty fields replace the stored ones; empty fields are left unchanged
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task id"
// @Param taskRequest body handlers.TaskRequest true "Task fields"
// @Success 200 {object} models.Task "Updated task"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func NewUpdateTaskHandler(svc TaskDetailsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req TaskRequest
		if !decodeBody(w, r, &req) {
			return
		}

		task, err := svc.UpdateDetails(r.Context(), user, id, req.Title, req.Description)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, task)
	}
}
