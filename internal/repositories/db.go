package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/taskboard/internal/logger"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Supported database/sql driver names.
const (
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"
)

// ErrStorage marks failures of the store itself (I/O, connection, syntax),
// as opposed to declined operations.
var ErrStorage = errors.New("storage failure")

// errNoRows aborts a transaction whose target row does not exist.
var errNoRows = errors.New("no rows affected")

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// schema is applied on every start. Statements only create what is missing.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		token TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL CHECK (title <> ''),
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'ToDo' CHECK (status IN ('ToDo', 'Doing', 'Done')),
		owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS password_recovery (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		email TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		used BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner_id ON tasks(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_password_recovery_email ON password_recovery(email)`,
	`CREATE INDEX IF NOT EXISTS idx_password_recovery_created_at ON password_recovery(created_at)`,
}

// SQLiteDSN builds a modernc.org/sqlite DSN for the database file at path
// with foreign keys enforced and writers serialized at BEGIN.
func SQLiteDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_txlock", "immediate")
	q.Set("_time_format", "sqlite")
	return "file:" + path + "?" + q.Encode()
}

// Open connects to the store and makes sure the schema exists.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite, DriverPgx:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates missing tables and indexes. It never drops or
// migrates existing data, so it is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Log.Errorw("schema statement failed", "sql", oneLine(stmt), "error", err)
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// store carries what every repository needs to pick an executor.
type store struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// executor returns the context transaction when there is one.
func (s store) executor(ctx context.Context) sqlx.ExtContext {
	if s.txGetter != nil {
		if tx := s.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return s.db
}

// inTx runs fn inside the context transaction, or inside a new one that
// is committed when fn succeeds.
func (s store) inTx(ctx context.Context, fn func(ex sqlx.ExtContext) error) error {
	if s.txGetter != nil {
		if tx := s.txGetter(ctx); tx != nil {
			return fn(tx)
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log.Errorw("rollback failed", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (s store) rebind(query string) string {
	return s.db.Rebind(query)
}

// isConstraintViolation reports unique, foreign key, check and not-null
// violations for both supported drivers.
func isConstraintViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 23: integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}

// storageError logs and wraps an unexpected store failure.
func storageError(op string, err error) error {
	logger.Log.Errorw("storage failure", "op", op, "error", err)
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// logQuery writes the query on a single line with its outcome.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Debugw("query",
		"sql", oneLine(query),
		"args", args,
		"result", result,
		"error", err,
	)
}

func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func rowsAffected(res interface{ RowsAffected() (int64, error) }) int64 {
	if res == nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}
