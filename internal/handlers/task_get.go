package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=task_get.go -destination=mock_task_get.go -package=handlers

// TaskGetter loads a single task.
type TaskGetter interface {
	Get(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Task, error)
}

// NewGetTaskHandler returns an HTTP handler for a single task.
// @Summary Get task
// @Tags tasks
// @Produce json
// @Param id path string true "Task id"
// @Success 200 {object} models.Task "Task"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func NewGetTaskHandler(svc TaskGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		task, err := svc.Get(r.Context(), user, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, task)
	}
}
