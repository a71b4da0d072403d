package domain

import (
	"context"
	"fmt"
	"time"
)

// WeekListState is the lifecycle state of a week list.
type WeekListState string

const (
	WeekListActive    WeekListState = "active"
	WeekListInactive  WeekListState = "inactive" // declared, never assigned
	WeekListCompleted WeekListState = "completed"
)

const (
	// ActiveWindow is how long a week list accepts completion marks.
	ActiveWindow = 7 * 24 * time.Hour
	// EditWindow is how long after creation a week list may be edited or deleted.
	EditWindow = 24 * time.Hour
	// MaxActiveWeekLists caps the week lists a user may have open at once.
	MaxActiveWeekLists = 2
)

// WeekList is a user-owned, time-boxed collection of tasks.
type WeekList struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Tasks       []Task
	CreatedAt   time.Time
	ActiveUntil time.Time
	State       WeekListState
	Completed   bool
	CompletedAt *time.Time
}

// Task is a single item inside a week list.
type Task struct {
	ID          string
	WeekListID  string
	Description string
	Marked      bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// NewWeekList returns an active week list created at now.
func NewWeekList(userID, name, description string, now time.Time) *WeekList {
	return &WeekList{
		UserID:      userID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		ActiveUntil: now.Add(ActiveWindow),
		State:       WeekListActive,
	}
}

// CountsTowardLimit reports whether the week list occupies one of the user's
// active slots: not completed and activeUntil >= now.
func (w *WeekList) CountsTowardLimit(now time.Time) bool {
	return !w.Completed && !w.ActiveUntil.Before(now)
}

// WithinEditWindow reports whether now is at most EditWindow after creation.
// Exactly EditWindow is still editable.
func (w *WeekList) WithinEditWindow(now time.Time) bool {
	return now.Sub(w.CreatedAt) <= EditWindow
}

// DeadlinePassed reports whether activeUntil <= now.
func (w *WeekList) DeadlinePassed(now time.Time) bool {
	return !w.ActiveUntil.After(now)
}

// InFeed reports whether the week list belongs in the global feed. State and
// expiry are tracked independently, so both are checked.
func (w *WeekList) InFeed(now time.Time) bool {
	return w.State == WeekListActive && w.ActiveUntil.After(now)
}

// Remaining returns the time left until activeUntil, clamped at zero.
func (w *WeekList) Remaining(now time.Time) TimeRemaining {
	return RemainingUntil(w.ActiveUntil, now)
}

// CheckEditable returns ErrEditWindowExpired once the edit window has closed.
func (w *WeekList) CheckEditable(now time.Time) error {
	if !w.WithinEditWindow(now) {
		return ErrEditWindowExpired
	}
	return nil
}

// CheckDeadline returns ErrDeadlinePassed once activeUntil has been reached.
func (w *WeekList) CheckDeadline(now time.Time) error {
	if w.DeadlinePassed(now) {
		return ErrDeadlinePassed
	}
	return nil
}

// Complete moves the week list to the terminal completed state.
func (w *WeekList) Complete(now time.Time) error {
	if w.Completed {
		return ErrAlreadyCompleted
	}
	if !canTransition(w.State, WeekListCompleted) {
		return fmt.Errorf("%w: cannot complete week list in state %s", ErrInvalidInput, w.State)
	}
	w.State = WeekListCompleted
	w.Completed = true
	w.CompletedAt = &now
	return nil
}

func canTransition(from, to WeekListState) bool {
	switch from {
	case WeekListActive:
		return to == WeekListCompleted
	default:
		return false
	}
}

// Mark flags the task as done.
func (t *Task) Mark(now time.Time) error {
	if t.Marked {
		return ErrAlreadyCompleted
	}
	t.Marked = true
	t.CompletedAt = &now
	return nil
}

// WeekListRepository handles week list persistence. Returned week lists have
// their tasks loaded in insertion order.
type WeekListRepository interface {
	// Create inserts the week list. admit is called inside the same
	// transaction with the owner's existing week lists; a non-nil error
	// aborts the insert and is returned unchanged.
	Create(ctx context.Context, weekList *WeekList, admit func(existing []WeekList) error) error
	GetByID(ctx context.Context, id string) (*WeekList, error)
	ListByUser(ctx context.Context, userID string) ([]WeekList, error)
	ListByState(ctx context.Context, state WeekListState) ([]WeekList, error)
	UpdateDescription(ctx context.Context, id, description string) error
	// MarkCompleted sets the completed fields only if the week list is not
	// completed yet; otherwise it returns ErrAlreadyCompleted.
	MarkCompleted(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// TaskRepository handles task persistence. Every call is scoped to the
// owning week list.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, weekListID, id string) (*Task, error)
	ListByWeekList(ctx context.Context, weekListID string) ([]Task, error)
	UpdateDescription(ctx context.Context, weekListID, id, description string) error
	// MarkDone sets marked and completedAt only if the task is not marked yet;
	// otherwise it returns ErrAlreadyCompleted.
	MarkDone(ctx context.Context, weekListID, id string, at time.Time) error
	Delete(ctx context.Context, weekListID, id string) error
}
