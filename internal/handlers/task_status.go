package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=task_status.go -destination=mock_task_status.go -package=handlers

// TaskStatusUpdater moves a task between columns.
type TaskStatusUpdater interface {
	UpdateStatus(ctx context.Context, actor *models.User, id uuid.UUID, status string) (*models.Task, error)
}

// TaskStatusRequest represents the JSON body for a status change
// swagger:model TaskStatusRequest
type TaskStatusRequest struct {
	// New status: ToDo, Doing or Done
	// required: true
	// default: Doing
	Status string `json:"status"`
}

// NewUpdateTaskStatusHandler returns an HTTP handler changing a task's status.
// @Summary Change task status
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task id"
// @Param taskStatusRequest body handlers.TaskStatusRequest true "Status"
// @Success 200 {object} models.Task "Updated task"
// @Failure 400 {object} handlers.ErrorResponse "Invalid status"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func NewUpdateTaskStatusHandler(svc TaskStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req TaskStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		task, err := svc.UpdateStatus(r.Context(), user, id, req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, task)
	}
}
