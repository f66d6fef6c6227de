package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=task_list.go -destination=mock_task_list.go -package=handlers

// TaskLister lists the caller's tasks.
type TaskLister interface {
	List(ctx context.Context, actor *models.User) ([]models.Task, error)
	ListByStatus(ctx context.Context, actor *models.User, status string) ([]models.Task, error)
}

// TasksResponse is a list of tasks, newest first
// swagger:model TasksResponse
type TasksResponse struct {
	Tasks []models.Task `json:"tasks"`
}

// NewListTasksHandler returns an HTTP handler listing the caller's tasks.
// @Summary List own tasks
// @Description Returns the caller's tasks newest first, optionally filtered by status
// @Tags tasks
// @Produce json
// @Param status query string false "ToDo, Doing or Done"
// @Success 200 {object} handlers.TasksResponse "Tasks"
// @Failure 400 {object} handlers.ErrorResponse "Invalid status"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /tasks [get]
func NewListTasksHandler(svc TaskLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var (
			tasks []models.Task
			err   error
		)
		if status := r.URL.Query().Get("status"); status != "" {
			tasks, err = svc.ListByStatus(r.Context(), user, status)
		} else {
			tasks, err = svc.List(r.Context(), user)
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if tasks == nil {
			tasks = []models.Task{}
		}
		writeJSON(w, http.StatusOK, TasksResponse{Tasks: tasks})
	}
}
