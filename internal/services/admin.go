package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/logger"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=services

var (
	ErrSelfDeletion = errors.New("admins cannot delete their own account")
	ErrSelfDemotion = errors.New("admins cannot revoke their own admin rights")
)

// UserDirectory lists and looks up every account.
type UserDirectory interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
}

// UserManager writes accounts on behalf of an admin.
type UserManager interface {
	Create(ctx context.Context, user *models.User) (bool, error)
	Update(ctx context.Context, user *models.User) (bool, error)
	DeleteWithTasks(ctx context.Context, id uuid.UUID) (bool, error)
}

// TaskOverviewReader reads every task together with its owner.
type TaskOverviewReader interface {
	GetAllWithOwners(ctx context.Context) ([]models.TaskWithOwner, error)
}

// TaskCreator stores new tasks.
type TaskCreator interface {
	Create(ctx context.Context, task *models.Task) (bool, error)
}

type StatsReader interface {
	Get(ctx context.Context) (*models.Stats, error)
}

// AdminService holds the operations reserved to admins. Every method
// returns ErrForbidden for a non-admin actor.
type AdminService struct {
	users       UserDirectory
	manager     UserManager
	overview    TaskOverviewReader
	tasks       TaskCreator
	stats       StatsReader
	kafkaWriter KafkaWriter
}

func NewAdminService(
	users UserDirectory,
	manager UserManager,
	overview TaskOverviewReader,
	tasks TaskCreator,
	stats StatsReader,
	kafkaWriter KafkaWriter,
) *AdminService {
	return &AdminService{
		users:       users,
		manager:     manager,
		overview:    overview,
		tasks:       tasks,
		stats:       stats,
		kafkaWriter: kafkaWriter,
	}
}

func requireAdmin(actor *models.User) error {
	if actor == nil || !actor.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.users.GetAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *AdminService) ListTasksWithOwners(ctx context.Context, actor *models.User) ([]models.TaskWithOwner, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	tasks, err := s.overview.GetAllWithOwners(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list tasks with owners", "error", err)
		return nil, err
	}
	return tasks, nil
}

// CreateUser adds an account directly, optionally as admin.
func (s *AdminService) CreateUser(ctx context.Context, actor *models.User, username, email, password string, isAdmin bool) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	newUser := models.NewUser
	if isAdmin {
		newUser = models.NewAdmin
	}
	user, err := newUser(username, email, password)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "error", err)
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	ok, err := s.manager.Create(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to create user", "error", err)
		return nil, err
	}
	if !ok {
		return nil, ErrUserAlreadyExists
	}

	logger.Log.Infow("user created by admin", "admin_id", actor.ID, "user_id", user.ID, "role", user.Role())
	return user, nil
}

// AssignTask creates a ToDo task owned by ownerID.
func (s *AdminService) AssignTask(ctx context.Context, actor *models.User, ownerID uuid.UUID, title, description string) (*models.Task, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	task, err := models.NewTask(title, description, ownerID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		logger.Log.Errorw("failed to get task owner", "owner_id", ownerID, "error", err)
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	ok, err := s.tasks.Create(ctx, task)
	if err != nil {
		logger.Log.Errorw("failed to assign task", "owner_id", ownerID, "error", err)
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	publishTaskEvent(ctx, s.kafkaWriter, newTaskEvent(models.EventTaskAssigned, task, actor))
	return task, nil
}

// SetAdmin promotes or demotes userID. An admin cannot demote themselves.
func (s *AdminService) SetAdmin(ctx context.Context, actor *models.User, userID uuid.UUID, isAdmin bool) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if userID == actor.ID && !isAdmin {
		return nil, ErrSelfDemotion
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		user.Promote()
	} else {
		user.Demote()
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Infow("admin rights changed", "admin_id", actor.ID, "user_id", userID, "role", user.Role())
	return user, nil
}

// ResetUserPassword sets a new password for userID and ends its session.
func (s *AdminService) ResetUserPassword(ctx context.Context, actor *models.User, userID uuid.UUID, newPassword string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(newPassword); err != nil {
		return err
	}
	user.ClearToken()
	return s.save(ctx, user)
}

// DeleteUser removes userID and every task it owns. Admins cannot delete
// their own account this way.
func (s *AdminService) DeleteUser(ctx context.Context, actor *models.User, userID uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if userID == actor.ID {
		return ErrSelfDeletion
	}

	ok, err := s.manager.DeleteWithTasks(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", userID, "error", err)
		return err
	}
	if !ok {
		return ErrUserNotFound
	}

	logger.Log.Infow("user deleted", "admin_id", actor.ID, "user_id", userID)
	return nil
}

func (s *AdminService) Stats(ctx context.Context, actor *models.User) (*models.Stats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	stats, err := s.stats.Get(ctx)
	if err != nil {
		logger.Log.Errorw("failed to get stats", "error", err)
		return nil, err
	}
	return stats, nil
}

func (s *AdminService) getUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AdminService) save(ctx context.Context, user *models.User) error {
	ok, err := s.manager.Update(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", user.ID, "error", err)
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}
