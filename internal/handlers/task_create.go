package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=task_create.go -destination=mock_task_create.go -package=handlers

// TaskCreator creates tasks owned by the caller.
type TaskCreator interface {
	Create(ctx context.Context, actor *models.User, title, description string) (*models.Task, error)
}

// TaskRequest represents the JSON body for creating or editing a task
// swagger:model TaskRequest
type TaskRequest struct {
	// Title
	// required: true
	// default: Write report
	Title string `json:"title"`

	// Description
	// default: Quarterly numbers
	Description string `json:"description"`
}

// NewCreateTaskHandler returns an HTTP handler creating a task in ToDo.
// @Summary Create task
// @Description Creates a task owned by the caller with status ToDo
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskRequest body handlers.TaskRequest true "Task"
// @Success 201 {object} models.Task "Created task"
// @Failure 400 {object} handlers.ErrorResponse "Title is required"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /tasks [post]
func NewCreateTaskHandler(svc TaskCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req TaskRequest
		if !decodeBody(w, r, &req) {
			return
		}

		task, err := svc.Create(r.Context(), user, req.Title, req.Description)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, task)
	}
}
