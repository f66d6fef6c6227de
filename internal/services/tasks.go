package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/logger"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=tasks.go -destination=mock_tasks.go -package=services

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrForbidden     = errors.New("operation not permitted")
	ErrInvalidStatus = errors.New("invalid task status")
)

// TaskReader defines read-only operations for tasks.
type TaskReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Task, error)
	GetByStatus(ctx context.Context, status models.TaskStatus, ownerID *uuid.UUID) ([]models.Task, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	Create(ctx context.Context, task *models.Task) (bool, error)
	Update(ctx context.Context, task *models.Task) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TaskService manages tasks on behalf of an acting user. Owners and
// admins may change a task; everybody else gets ErrForbidden.
type TaskService struct {
	reader      TaskReader
	writer      TaskWriter
	kafkaWriter KafkaWriter
}

func NewTaskService(reader TaskReader, writer TaskWriter, kafkaWriter KafkaWriter) *TaskService {
	return &TaskService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

// Create adds a ToDo task owned by actor.
func (s *TaskService) Create(ctx context.Context, actor *models.User, title, description string) (*models.Task, error) {
	task, err := models.NewTask(title, description, actor.ID)
	if err != nil {
		return nil, err
	}

	ok, err := s.writer.Create(ctx, task)
	if err != nil {
		logger.Log.Errorw("failed to create task", "owner_id", actor.ID, "error", err)
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	publishTaskEvent(ctx, s.kafkaWriter, newTaskEvent(models.EventTaskCreated, task, actor))
	return task, nil
}

// List returns the actor's own tasks, newest first.
func (s *TaskService) List(ctx context.Context, actor *models.User) ([]models.Task, error) {
	tasks, err := s.reader.GetByOwner(ctx, actor.ID)
	if err != nil {
		logger.Log.Errorw("failed to list tasks", "owner_id", actor.ID, "error", err)
		return nil, err
	}
	return tasks, nil
}

// ListByStatus returns the actor's tasks in one column of the board.
func (s *TaskService) ListByStatus(ctx context.Context, actor *models.User, status string) ([]models.Task, error) {
	st, ok := models.ParseTaskStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	tasks, err := s.reader.GetByStatus(ctx, st, &actor.ID)
	if err != nil {
		logger.Log.Errorw("failed to list tasks by status", "owner_id", actor.ID, "status", status, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Task, error) {
	return s.load(ctx, actor, id)
}

// UpdateDetails replaces the non-empty fields. Nothing is written when
// neither field changes.
func (s *TaskService) UpdateDetails(ctx context.Context, actor *models.User, id uuid.UUID, title, description string) (*models.Task, error) {
	task, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !task.UpdateDetails(title, description) {
		return task, nil
	}

	if err := s.update(ctx, task); err != nil {
		return nil, err
	}
	publishTaskEvent(ctx, s.kafkaWriter, newTaskEvent(models.EventTaskUpdated, task, actor))
	return task, nil
}

// UpdateStatus moves the task to another column. An unknown status
// leaves the task untouched.
func (s *TaskService) UpdateStatus(ctx context.Context, actor *models.User, id uuid.UUID, status string) (*models.Task, error) {
	task, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !task.UpdateStatus(status) {
		return nil, ErrInvalidStatus
	}

	if err := s.update(ctx, task); err != nil {
		return nil, err
	}
	publishTaskEvent(ctx, s.kafkaWriter, newTaskEvent(models.EventTaskStatusChanged, task, actor))
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	task, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}

	ok, err := s.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete task", "task_id", id, "error", err)
		return err
	}
	if !ok {
		return ErrTaskNotFound
	}

	publishTaskEvent(ctx, s.kafkaWriter, newTaskEvent(models.EventTaskDeleted, task, actor))
	return nil
}

// load fetches the task and checks that actor may act on it.
func (s *TaskService) load(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Task, error) {
	task, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get task", "task_id", id, "error", err)
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.OwnerID != actor.ID && !actor.IsAdmin {
		logger.Log.Warnw("task access denied", "task_id", id, "actor_id", actor.ID)
		return nil, ErrForbidden
	}
	return task, nil
}

func (s *TaskService) update(ctx context.Context, task *models.Task) error {
	ok, err := s.writer.Update(ctx, task)
	if err != nil {
		logger.Log.Errorw("failed to update task", "task_id", task.ID, "error", err)
		return err
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}
