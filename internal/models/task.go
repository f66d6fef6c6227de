package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/validation"
)

// TaskStatus is the Kanban column of a task.
type TaskStatus string

// Supported task statuses
const (
	StatusToDo  TaskStatus = "ToDo"
	StatusDoing TaskStatus = "Doing"
	StatusDone  TaskStatus = "Done"
)

// TaskStatuses lists the valid statuses in board order.
var TaskStatuses = []TaskStatus{StatusToDo, StatusDoing, StatusDone}

// ParseTaskStatus returns the status named by s and whether it is valid.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	for _, st := range TaskStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Task represents a card on the board.
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`                   // Primary key
	Title       string     `json:"title" db:"title"`             // Required title
	Description string     `json:"description" db:"description"` // Optional, may be empty
	Status      TaskStatus `json:"status" db:"status"`           // ToDo, Doing or Done
	OwnerID     uuid.UUID  `json:"owner_id" db:"owner_id"`       // Owning user
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`   // Last content or status change
}

// NewTask builds a ToDo task owned by ownerID. The title must not be blank.
func NewTask(title, description string, ownerID uuid.UUID) (*Task, error) {
	if err := validation.ValidateTitle(title); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      StatusToDo,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// RestoreTask rebuilds a task from persisted fields without validation.
func RestoreTask(id uuid.UUID, title, description string, status TaskStatus, ownerID uuid.UUID, createdAt, updatedAt time.Time) *Task {
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      status,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// UpdateStatus moves the task to status. Unknown statuses are rejected
// and leave the task untouched.
func (t *Task) UpdateStatus(status string) bool {
	st, ok := ParseTaskStatus(status)
	if !ok {
		return false
	}
	t.Status = st
	t.touch()
	return true
}

// UpdateDetails replaces title and description with the non-empty
// arguments. UpdatedAt moves only when a field actually changed.
func (t *Task) UpdateDetails(title, description string) bool {
	changed := false
	if title != "" && title != t.Title {
		t.Title = title
		changed = true
	}
	if description != "" && description != t.Description {
		t.Description = description
		changed = true
	}
	if changed {
		t.touch()
	}
	return changed
}

// touch bumps UpdatedAt, keeping it strictly increasing even when the
// clock has not advanced since the last change.
func (t *Task) touch() {
	now := time.Now().UTC()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Microsecond)
	}
	t.UpdatedAt = now
}

// TaskWithOwner is a task joined with its owner's public fields.
type TaskWithOwner struct {
	Task
	OwnerUsername string `json:"owner_username" db:"owner_username"`
	OwnerEmail    string `json:"owner_email" db:"owner_email"`
	OwnerIsAdmin  bool   `json:"owner_is_admin" db:"owner_is_admin"`
}
