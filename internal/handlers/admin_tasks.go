package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=admin_tasks.go -destination=mock_admin_tasks.go -package=handlers

// AdminTaskLister lists every task joined with its owner.
type AdminTaskLister interface {
	ListTasksWithOwners(ctx context.Context, actor *models.User) ([]models.TaskWithOwner, error)
}

// AdminTaskAssigner creates a task for another user.
type AdminTaskAssigner interface {
	AssignTask(ctx context.Context, actor *models.User, ownerID uuid.UUID, title, description string) (*models.Task, error)
}

// TasksWithOwnersResponse is the board-wide task list
// swagger:model TasksWithOwnersResponse
type TasksWithOwnersResponse struct {
	Tasks []models.TaskWithOwner `json:"tasks"`
}

// AssignTaskRequest represents the JSON body for assigning a task
// swagger:model AssignTaskRequest
type AssignTaskRequest struct {
	// Owner id
	// required: true
	OwnerID uuid.UUID `json:"owner_id"`

	// Title
	// required: true
	// default: Review PR
	Title string `json:"title"`

	// Description
	Description string `json:"description"`
}

// NewAdminListTasksHandler returns an HTTP handler listing all tasks with owners.
// @Summary List all tasks
// @Tags admin
// @Produce json
// @Success 200 {object} handlers.TasksWithOwnersResponse "Tasks"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /admin/tasks [get]
func NewAdminListTasksHandler(svc AdminTaskLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(w, r)
		if !ok {
			return
		}

		tasks, err := svc.ListTasksWithOwners(r.Context(), actor)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if tasks == nil {
			tasks = []models.TaskWithOwner{}
		}
		writeJSON(w, http.StatusOK, TasksWithOwnersResponse{Tasks: tasks})
	}
}

// NewAdminAssignTaskHandler returns an HTTP handler assigning a new task to a user.
// @Summary Assign task
// @Tags admin
// @Accept json
// @Produce json
// @Param assignTaskRequest body handlers.AssignTaskRequest true "Task"
// @Success 201 {object} models.Task "Created task"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/tasks [post]
func NewAdminAssignTaskHandler(svc AdminTaskAssigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req AssignTaskRequest
		if !decodeBody(w, r, &req) {
			return
		}

		task, err := svc.AssignTask(r.Context(), actor, req.OwnerID, req.Title, req.Description)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, task)
	}
}
