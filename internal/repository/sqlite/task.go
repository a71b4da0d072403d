package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/weeklist/internal/domain"
)

// taskRepo implements domain.TaskRepository using SQLite.
type taskRepo struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite-backed TaskRepository.
func NewTaskRepository(db *DB) domain.TaskRepository {
	return &taskRepo{db: db.SqlDB}
}

const taskColumns = `id, week_list_id, description, marked, completed_at, created_at`

func scanTask(row rowScanner) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.WeekListID, &t.Description, &t.Marked, &t.CompletedAt, &t.CreatedAt)
	return t, err
}

func (r *taskRepo) Create(ctx context.Context, task *domain.Task) error {
	id := uuid.NewString()
	createdAt := task.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		id, task.WeekListID, task.Description, task.Marked, utcPtr(task.CompletedAt), createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	task.ID = id
	task.CreatedAt = createdAt
	return nil
}

func (r *taskRepo) GetByID(ctx context.Context, weekListID, id string) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND week_list_id = ?`, id, weekListID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

func (r *taskRepo) ListByWeekList(ctx context.Context, weekListID string) ([]domain.Task, error) {
	return listTasks(ctx, r.db, weekListID)
}

func (r *taskRepo) UpdateDescription(ctx context.Context, weekListID, id, description string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET description = ? WHERE id = ? AND week_list_id = ?",
		description, id, weekListID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return expectOneRow(result)
}

func (r *taskRepo) MarkDone(ctx context.Context, weekListID, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET marked = 1, completed_at = ?
		 WHERE id = ? AND week_list_id = ? AND marked = 0`,
		at.UTC(), id, weekListID,
	)
	if err != nil {
		return fmt.Errorf("mark task done: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, weekListID, id); err != nil {
		return err
	}
	return domain.ErrAlreadyCompleted
}

func (r *taskRepo) Delete(ctx context.Context, weekListID, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND week_list_id = ?", id, weekListID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOneRow(result)
}

func listTasks(ctx context.Context, q querier, weekListID string) ([]domain.Task, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE week_list_id = ? ORDER BY rowid`, weekListID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
