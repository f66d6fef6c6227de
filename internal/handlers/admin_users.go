package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=admin_users.go -destination=mock_admin_users.go -package=handlers

// AdminUserLister lists every account.
type AdminUserLister interface {
	ListUsers(ctx context.Context, actor *models.User) ([]models.User, error)
}

// AdminUserCreator creates accounts on behalf of an administrator.
type AdminUserCreator interface {
	CreateUser(ctx context.Context, actor *models.User, username, email, password string, isAdmin bool) (*models.User, error)
}

// UsersResponse is a list of accounts, newest first
// swagger:model UsersResponse
type UsersResponse struct {
	Users []models.User `json:"users"`
}

// CreateUserRequest represents the JSON body for creating an account
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Username
	// required: true
	// default: jane_doe
	Username string `json:"username"`

	// Email
	// required: true
	// default: jane@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Grant admin rights
	// default: false
	IsAdmin bool `json:"is_admin"`
}

// NewAdminListUsersHandler returns an HTTP handler listing all users.
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {object} handlers.UsersResponse "Users"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /admin/users [get]
func NewAdminListUsersHandler(svc AdminUserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(w, r)
		if !ok {
			return
		}

		users, err := svc.ListUsers(r.Context(), actor)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if users == nil {
			users = []models.User{}
		}
		writeJSON(w, http.StatusOK, UsersResponse{Users: users})
	}
}

// NewAdminCreateUserHandler returns an HTTP handler creating a user or admin.
// @Summary Create user
// @Tags admin
// @Accept json
// @Produce json
// @Param createUserRequest body handlers.CreateUserRequest true "Account"
// @Success 201 {object} models.User "Created user"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 409 {object} handlers.ErrorResponse "Username or email already exists"
// @Security BearerAuth
// @Router /admin/users [post]
func NewAdminCreateUserHandler(svc AdminUserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req CreateUserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		user, err := svc.CreateUser(r.Context(), actor, req.Username, req.Email, req.Password, req.IsAdmin)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}
