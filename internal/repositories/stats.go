package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/taskboard/internal/models"
)

// StatsRepository computes aggregate counts.
type StatsRepository struct {
	store
}

func NewStatsRepository(db *sqlx.DB, txGetter TxGetter) *StatsRepository {
	return &StatsRepository{store{db: db, txGetter: txGetter}}
}

// Get counts users by role and tasks by status in one read.
func (r *StatsRepository) Get(ctx context.Context) (*models.Stats, error) {
	query := r.rebind(`
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM users WHERE is_admin = ?) AS admin_users,
			(SELECT COUNT(*) FROM tasks) AS total_tasks,
			(SELECT COUNT(*) FROM tasks WHERE status = ?) AS todo_tasks,
			(SELECT COUNT(*) FROM tasks WHERE status = ?) AS doing_tasks,
			(SELECT COUNT(*) FROM tasks WHERE status = ?) AS done_tasks
	`)
	args := []any{true, string(models.StatusToDo), string(models.StatusDoing), string(models.StatusDone)}

	var stats models.Stats
	err := sqlx.GetContext(ctx, r.executor(ctx), &stats, query, args...)
	logQuery(query, args, stats, err)
	if err != nil {
		return nil, storageError("get stats", err)
	}
	stats.RegularUsers = stats.TotalUsers - stats.AdminUsers
	return &stats, nil
}
