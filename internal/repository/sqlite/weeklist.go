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

// weekListRepo implements domain.WeekListRepository using SQLite.
type weekListRepo struct {
	db *sql.DB
}

// NewWeekListRepository creates a new SQLite-backed WeekListRepository.
func NewWeekListRepository(db *DB) domain.WeekListRepository {
	return &weekListRepo{db: db.SqlDB}
}

const weekListColumns = `id, user_id, name, description, created_at, active_until, state, completed, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWeekList(row rowScanner) (domain.WeekList, error) {
	var w domain.WeekList
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Description,
		&w.CreatedAt, &w.ActiveUntil, &w.State, &w.Completed, &w.CompletedAt)
	return w, err
}

func (r *weekListRepo) Create(ctx context.Context, weekList *domain.WeekList, admit func(existing []domain.WeekList) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if admit != nil {
		existing, err := queryWeekLists(ctx, tx,
			`SELECT `+weekListColumns+` FROM week_lists WHERE user_id = ? ORDER BY rowid`, weekList.UserID)
		if err != nil {
			return err
		}
		if err := admit(existing); err != nil {
			return err
		}
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO week_lists (`+weekListColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, weekList.UserID, weekList.Name, weekList.Description,
		weekList.CreatedAt.UTC(), weekList.ActiveUntil.UTC(), weekList.State,
		weekList.Completed, utcPtr(weekList.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert week list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	weekList.ID = id
	return nil
}

func (r *weekListRepo) GetByID(ctx context.Context, id string) (*domain.WeekList, error) {
	w, err := scanWeekList(r.db.QueryRowContext(ctx,
		`SELECT `+weekListColumns+` FROM week_lists WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get week list: %w", err)
	}

	tasks, err := listTasks(ctx, r.db, w.ID)
	if err != nil {
		return nil, err
	}
	w.Tasks = tasks
	return &w, nil
}

func (r *weekListRepo) ListByUser(ctx context.Context, userID string) ([]domain.WeekList, error) {
	weekLists, err := queryWeekLists(ctx, r.db,
		`SELECT `+weekListColumns+` FROM week_lists WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, err
	}
	return r.withTasks(ctx, weekLists)
}

func (r *weekListRepo) ListByState(ctx context.Context, state domain.WeekListState) ([]domain.WeekList, error) {
	weekLists, err := queryWeekLists(ctx, r.db,
		`SELECT `+weekListColumns+` FROM week_lists WHERE state = ? ORDER BY rowid`, state)
	if err != nil {
		return nil, err
	}
	return r.withTasks(ctx, weekLists)
}

func (r *weekListRepo) UpdateDescription(ctx context.Context, id, description string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE week_lists SET description = ? WHERE id = ?", description, id)
	if err != nil {
		return fmt.Errorf("update week list: %w", err)
	}
	return expectOneRow(result)
}

func (r *weekListRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE week_lists SET completed = 1, completed_at = ?, state = ?
		 WHERE id = ? AND completed = 0`,
		at.UTC(), domain.WeekListCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("mark week list completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 1 {
		return nil
	}

	// Nothing changed: either the row is gone or another request completed it first.
	var exists int
	err = r.db.QueryRowContext(ctx, "SELECT 1 FROM week_lists WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check week list: %w", err)
	}
	return domain.ErrAlreadyCompleted
}

func (r *weekListRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM week_lists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete week list: %w", err)
	}
	return expectOneRow(result)
}

func (r *weekListRepo) withTasks(ctx context.Context, weekLists []domain.WeekList) ([]domain.WeekList, error) {
	for i := range weekLists {
		tasks, err := listTasks(ctx, r.db, weekLists[i].ID)
		if err != nil {
			return nil, err
		}
		weekLists[i].Tasks = tasks
	}
	return weekLists, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryWeekLists(ctx context.Context, q querier, query string, args ...any) ([]domain.WeekList, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list week lists: %w", err)
	}
	defer rows.Close()

	var weekLists []domain.WeekList
	for rows.Next() {
		w, err := scanWeekList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan week list: %w", err)
		}
		weekLists = append(weekLists, w)
	}
	return weekLists, rows.Err()
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
