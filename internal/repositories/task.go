package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/taskboard/internal/models"
)

const taskColumns = `id, title, description, status, owner_id, created_at, updated_at`

// TaskReadRepository serves task queries.
type TaskReadRepository struct {
	store
}

func NewTaskReadRepository(db *sqlx.DB, txGetter TxGetter) *TaskReadRepository {
	return &TaskReadRepository{store{db: db, txGetter: txGetter}}
}

// GetByID returns nil, nil when the task does not exist.
func (r *TaskReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := r.rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)

	var task models.Task
	err := sqlx.GetContext(ctx, r.executor(ctx), &task, query, id)
	logQuery(query, []any{id}, task.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("get task by id", err)
	}
	normalizeTask(&task)
	return &task, nil
}

// GetByOwner returns the owner's tasks, newest first.
func (r *TaskReadRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Task, error) {
	return r.selectTasks(ctx, "get tasks by owner",
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
}

// GetByStatus returns tasks in status, newest first. A nil ownerID
// searches every owner.
func (r *TaskReadRepository) GetByStatus(ctx context.Context, status models.TaskStatus, ownerID *uuid.UUID) ([]models.Task, error) {
	if ownerID == nil {
		return r.selectTasks(ctx, "get tasks by status",
			`SELECT `+taskColumns+` FROM tasks WHERE status = ? ORDER BY created_at DESC`, string(status))
	}
	return r.selectTasks(ctx, "get tasks by status",
		`SELECT `+taskColumns+` FROM tasks WHERE status = ? AND owner_id = ? ORDER BY created_at DESC`, string(status), *ownerID)
}

// GetAllWithOwners joins every task with its owner's username, email and
// role, newest first.
func (r *TaskReadRepository) GetAllWithOwners(ctx context.Context) ([]models.TaskWithOwner, error) {
	query := r.rebind(`
		SELECT t.id, t.title, t.description, t.status, t.owner_id, t.created_at, t.updated_at,
		       COALESCE(u.username, '') AS owner_username,
		       COALESCE(u.email, '') AS owner_email,
		       COALESCE(u.is_admin, FALSE) AS owner_is_admin
		FROM tasks t
		LEFT JOIN users u ON u.id = t.owner_id
		ORDER BY t.created_at DESC
	`)

	tasks := []models.TaskWithOwner{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &tasks, query)
	logQuery(query, nil, len(tasks), err)
	if err != nil {
		return nil, storageError("get all tasks with owners", err)
	}
	for i := range tasks {
		normalizeTask(&tasks[i].Task)
	}
	return tasks, nil
}

// CountByStatus counts tasks per status. A nil ownerID counts every task.
// Statuses without tasks are reported as zero.
func (r *TaskReadRepository) CountByStatus(ctx context.Context, ownerID *uuid.UUID) (map[models.TaskStatus]int, error) {
	query := `SELECT status, COUNT(*) AS count FROM tasks GROUP BY status`
	var args []any
	if ownerID != nil {
		query = `SELECT status, COUNT(*) AS count FROM tasks WHERE owner_id = ? GROUP BY status`
		args = append(args, *ownerID)
	}
	query = r.rebind(query)

	var rows []struct {
		Status models.TaskStatus `db:"status"`
		Count  int               `db:"count"`
	}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &rows, query, args...)
	logQuery(query, args, len(rows), err)
	if err != nil {
		return nil, storageError("count tasks by status", err)
	}

	counts := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for _, st := range models.TaskStatuses {
		counts[st] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *TaskReadRepository) selectTasks(ctx context.Context, op, query string, args ...any) ([]models.Task, error) {
	query = r.rebind(query)

	tasks := []models.Task{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &tasks, query, args...)
	logQuery(query, args, len(tasks), err)
	if err != nil {
		return nil, storageError(op, err)
	}
	for i := range tasks {
		normalizeTask(&tasks[i])
	}
	return tasks, nil
}

// TaskWriteRepository handles task writes.
type TaskWriteRepository struct {
	store
	now func() time.Time
}

func NewTaskWriteRepository(db *sqlx.DB, txGetter TxGetter) *TaskWriteRepository {
	return &TaskWriteRepository{
		store: store{db: db, txGetter: txGetter},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts task. It returns false when the owner does not exist,
// the id is taken or a field breaks a table constraint.
func (r *TaskWriteRepository) Create(ctx context.Context, task *models.Task) (bool, error) {
	query := r.rebind(`
		INSERT INTO tasks (id, title, description, status, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	args := []any{task.ID, task.Title, task.Description, string(task.Status), task.OwnerID, task.CreatedAt, task.UpdatedAt}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	logQuery(query, args, rowsAffected(res), err)

	if err != nil {
		if isConstraintViolation(err) {
			return false, nil
		}
		return false, storageError("create task", err)
	}
	return true, nil
}

// Update writes title, description and status. updated_at is always set
// to the current time, whatever the caller put in task.UpdatedAt; on
// success task.UpdatedAt reflects the stored value.
func (r *TaskWriteRepository) Update(ctx context.Context, task *models.Task) (bool, error) {
	now := r.now()
	if !now.After(task.UpdatedAt) {
		now = task.UpdatedAt.Add(time.Microsecond)
	}

	query := r.rebind(`
		UPDATE tasks
		SET title = ?, description = ?, status = ?, updated_at = ?
		WHERE id = ?
	`)
	args := []any{task.Title, task.Description, string(task.Status), now, task.ID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	n := rowsAffected(res)
	logQuery(query, args, n, err)

	if err != nil {
		if isConstraintViolation(err) {
			return false, nil
		}
		return false, storageError("update task", err)
	}
	if n == 0 {
		return false, nil
	}
	task.UpdatedAt = now
	return true, nil
}

// Delete returns false when the task does not exist.
func (r *TaskWriteRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := r.rebind(`DELETE FROM tasks WHERE id = ?`)

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	n := rowsAffected(res)
	logQuery(query, []any{id}, n, err)

	if err != nil {
		return false, storageError("delete task", err)
	}
	return n > 0, nil
}

func normalizeTask(t *models.Task) {
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
}
