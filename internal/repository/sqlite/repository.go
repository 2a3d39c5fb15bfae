package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"task-agent/internal/config"
	"task-agent/internal/domain"
	"task-agent/internal/errors"
	"task-agent/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// taskColumns is the canonical column list scanned by ScanTask.
const taskColumns = "id, user_id, title, description, priority, status, created_at, due_date, category"

// Repository defines the interface for database operations
type Repository interface {
	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64, userID int64) (*Task, error)
	ListTasks(ctx context.Context, opts domain.FilterOptions) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64, userID int64) error
	ListCategories(ctx context.Context, userID int64) ([]string, error)

	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// Utility
	Ping(ctx context.Context) error
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	writeTimeout time.Duration
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return ctx, func() {}
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// NewWithConfig creates the repository for production use: it creates the
// database directory if needed and applies the configured statement timeouts.
func NewWithConfig(dbPath string, cfg *config.Config) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
			return nil, errors.NewStorageError("create database directory", err)
		}
	}

	repo, err := New(dbPath)
	if err != nil {
		return nil, err
	}
	repo.queryTimeout = cfg.Database.QueryTimeout
	repo.writeTimeout = cfg.Database.WriteTimeout
	return repo, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping checks database connectivity
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return errors.NewStorageError("ping database", err)
	}
	return nil
}

// CreateTask creates a new task and backfills its ID and creation timestamp
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := `
	INSERT INTO tasks (user_id, title, description, priority, status, due_date, category)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.UserID, task.Title, task.Description, task.Priority, task.Status, task.DueDate, task.Category)
	if err != nil {
		return err
	}

	task.ID = id

	created, err := r.GetTask(ctx, id, task.UserID)
	if err != nil {
		return err
	}
	task.CreatedAt = created.CreatedAt
	return nil
}

// GetTask retrieves a task by ID. A non-zero userID scopes the lookup to
// that owner; tasks of other users are indistinguishable from missing ones.
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64, userID int64) (*Task, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = ?", taskColumns)
	args := []interface{}{id}
	if userID != 0 {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), args...)
}

// ListTasks retrieves tasks matching the filter options
func (r *SQLiteRepository) ListTasks(ctx context.Context, opts domain.FilterOptions) ([]*Task, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	var conditions []string
	var args []interface{}

	if opts.UserID != 0 {
		conditions = append(conditions, "user_id = ?")
		args = append(args, opts.UserID)
	}
	if opts.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *opts.Status)
	}
	if opts.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *opts.Priority)
	}
	if opts.Category != nil {
		conditions = append(conditions, "LOWER(category) = LOWER(?)")
		args = append(args, *opts.Category)
	}

	query := fmt.Sprintf("SELECT %s FROM tasks", taskColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += orderClause(opts.SortBy)

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
}

// orderClause maps a sort key to its ORDER BY clause. Due-date sorting puts
// tasks without a due date last; priority sorting ranks urgent first.
func orderClause(sortBy string) string {
	switch sortBy {
	case domain.SortByDueDate:
		return " ORDER BY (due_date IS NULL), due_date ASC, id ASC"
	case domain.SortByPriority:
		return " ORDER BY CASE priority" +
			" WHEN 'urgent' THEN 0 WHEN 'high' THEN 1" +
			" WHEN 'medium' THEN 2 WHEN 'low' THEN 3 END, id ASC"
	case domain.SortByCreatedAt:
		return " ORDER BY created_at DESC, id DESC"
	default:
		return " ORDER BY id"
	}
}

// UpdateTask updates an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := `
	UPDATE tasks
	SET title = ?, description = ?, priority = ?, status = ?, due_date = ?, category = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", task.ID),
		task.Title, task.Description, task.Priority, task.Status, task.DueDate, task.Category, task.ID)
}

// DeleteTask deletes a task by ID, scoped to its owner when userID is non-zero
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64, userID int64) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := "DELETE FROM tasks WHERE id = ?"
	args := []interface{}{id}
	if userID != 0 {
		query += " AND user_id = ?"
		args = append(args, userID)
	}
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), args...)
}

// ListCategories retrieves the distinct non-empty category labels in use
func (r *SQLiteRepository) ListCategories(ctx context.Context, userID int64) ([]string, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := "SELECT DISTINCT category FROM tasks WHERE category IS NOT NULL AND category != ''"
	var args []interface{}
	if userID != 0 {
		query += " AND user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY category"

	results, err := QueryMultiple(ctx, r.db, query, ScanCategories, "categories", args...)
	if err != nil {
		return nil, err
	}

	categories := make([]string, len(results))
	for i, c := range results {
		categories[i] = *c
	}
	return categories, nil
}

// CreateUser creates a new user row. Username and email uniqueness is
// enforced by the schema; violations surface as storage errors.
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := "INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)"
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetUserByID retrieves a user by ID
func (r *SQLiteRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := "SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?"
	return QuerySingle(ctx, r.db, query, ScanUser, "user", fmt.Sprintf("%d", id), id)
}

// GetUserByUsername retrieves a user by username
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := "SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?"
	return QuerySingle(ctx, r.db, query, ScanUser, "user", username, username)
}

// GetUserByEmail retrieves a user by email
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := "SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?"
	return QuerySingle(ctx, r.db, query, ScanUser, "user", email, email)
}
