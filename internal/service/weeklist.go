package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/weeklist/internal/domain"
)

// WeekListService implements the week list and task lifecycle rules.
// Every method taking a userID treats it as the already-authenticated owner:
// week lists belonging to someone else are reported as not found.
type WeekListService struct {
	users     domain.UserRepository
	weekLists domain.WeekListRepository
	tasks     domain.TaskRepository
	now       func() time.Time
}

// NewWeekListService creates a new WeekListService.
func NewWeekListService(users domain.UserRepository, weekLists domain.WeekListRepository, tasks domain.TaskRepository) *WeekListService {
	return &WeekListService{users: users, weekLists: weekLists, tasks: tasks, now: time.Now}
}

// SetClock replaces the time source used for every window and deadline check.
func (s *WeekListService) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the service's current time.
func (s *WeekListService) Now() time.Time {
	return s.now().UTC()
}

// Create adds a week list for userID, refusing when the user already has
// MaxActiveWeekLists uncompleted, unexpired week lists.
func (s *WeekListService) Create(ctx context.Context, userID, name, description string) (*domain.WeekList, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	now := s.Now()
	weekList := domain.NewWeekList(userID, name, description, now)

	admit := func(existing []domain.WeekList) error {
		active := 0
		for i := range existing {
			if existing[i].CountsTowardLimit(now) {
				active++
			}
		}
		if active >= domain.MaxActiveWeekLists {
			return fmt.Errorf("%w: user can have only %d active week lists", domain.ErrLimitExceeded, domain.MaxActiveWeekLists)
		}
		return nil
	}

	if err := s.weekLists.Create(ctx, weekList, admit); err != nil {
		if errors.Is(err, domain.ErrLimitExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("create week list: %w", err)
	}
	weekList.Tasks = []domain.Task{}
	return weekList, nil
}

// UpdateDescription replaces the description while the edit window is open.
func (s *WeekListService) UpdateDescription(ctx context.Context, userID, weekListID, description string) error {
	weekList, err := s.getOwned(ctx, userID, weekListID)
	if err != nil {
		return err
	}
	if err := weekList.CheckEditable(s.Now()); err != nil {
		return err
	}
	if err := s.weekLists.UpdateDescription(ctx, weekListID, description); err != nil {
		return notFoundAs(err, domain.ErrWeekListNotFound, "update week list")
	}
	return nil
}

// Delete removes the week list and its tasks while the edit window is open.
func (s *WeekListService) Delete(ctx context.Context, userID, weekListID string) error {
	weekList, err := s.getOwned(ctx, userID, weekListID)
	if err != nil {
		return err
	}
	if err := weekList.CheckEditable(s.Now()); err != nil {
		return err
	}
	if err := s.weekLists.Delete(ctx, weekListID); err != nil {
		return notFoundAs(err, domain.ErrWeekListNotFound, "delete week list")
	}
	return nil
}

// ListByUser returns all of the user's week lists in creation order.
func (s *WeekListService) ListByUser(ctx context.Context, userID string) ([]domain.WeekList, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}
	weekLists, err := s.weekLists.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list week lists: %w", err)
	}
	return weekLists, nil
}

// Get returns a week list by id regardless of owner.
func (s *WeekListService) Get(ctx context.Context, weekListID string) (*domain.WeekList, error) {
	weekList, err := s.weekLists.GetByID(ctx, weekListID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrWeekListNotFound, "get week list")
	}
	return weekList, nil
}

// Feed returns every week list, across all users, that is still active and
// unexpired.
func (s *WeekListService) Feed(ctx context.Context) ([]domain.WeekList, error) {
	candidates, err := s.weekLists.ListByState(ctx, domain.WeekListActive)
	if err != nil {
		return nil, fmt.Errorf("list active week lists: %w", err)
	}

	now := s.Now()
	feed := make([]domain.WeekList, 0, len(candidates))
	for _, w := range candidates {
		if w.InFeed(now) {
			feed = append(feed, w)
		}
	}
	return feed, nil
}

// CheckDeadline resolves the user's week list and fails with
// domain.ErrDeadlinePassed once its activeUntil has been reached.
func (s *WeekListService) CheckDeadline(ctx context.Context, userID, weekListID string) (*domain.WeekList, error) {
	weekList, err := s.getOwned(ctx, userID, weekListID)
	if err != nil {
		return nil, err
	}
	if err := weekList.CheckDeadline(s.Now()); err != nil {
		return nil, err
	}
	return weekList, nil
}

// MarkDone completes the week list. Completing twice returns
// domain.ErrAlreadyCompleted.
func (s *WeekListService) MarkDone(ctx context.Context, userID, weekListID string) (*domain.WeekList, error) {
	weekList, err := s.CheckDeadline(ctx, userID, weekListID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := weekList.Complete(now); err != nil {
		return nil, err
	}
	if err := s.weekLists.MarkCompleted(ctx, weekListID, now); err != nil {
		if errors.Is(err, domain.ErrAlreadyCompleted) {
			return nil, err
		}
		return nil, notFoundAs(err, domain.ErrWeekListNotFound, "mark week list completed")
	}
	return weekList, nil
}

// AddTask appends an unmarked task to the week list.
func (s *WeekListService) AddTask(ctx context.Context, userID, weekListID, description string) (*domain.Task, error) {
	if _, err := s.getOwned(ctx, userID, weekListID); err != nil {
		return nil, err
	}

	task := &domain.Task{WeekListID: weekListID, Description: description, CreatedAt: s.Now()}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// UpdateTask replaces a task's description.
func (s *WeekListService) UpdateTask(ctx context.Context, userID, weekListID, taskID, description string) error {
	if _, err := s.getOwned(ctx, userID, weekListID); err != nil {
		return err
	}
	if err := s.tasks.UpdateDescription(ctx, weekListID, taskID, description); err != nil {
		return notFoundAs(err, domain.ErrTaskNotFound, "update task")
	}
	return nil
}

// DeleteTask removes a task. Unlike week lists, tasks have no edit window.
func (s *WeekListService) DeleteTask(ctx context.Context, userID, weekListID, taskID string) error {
	if _, err := s.getOwned(ctx, userID, weekListID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, weekListID, taskID); err != nil {
		return notFoundAs(err, domain.ErrTaskNotFound, "delete task")
	}
	return nil
}

// ListTasks returns the week list's tasks in insertion order.
func (s *WeekListService) ListTasks(ctx context.Context, userID, weekListID string) ([]domain.Task, error) {
	weekList, err := s.getOwned(ctx, userID, weekListID)
	if err != nil {
		return nil, err
	}
	return weekList.Tasks, nil
}

// MarkTaskDone marks a task done before the week list's deadline. Marking
// twice returns domain.ErrAlreadyCompleted.
func (s *WeekListService) MarkTaskDone(ctx context.Context, userID, weekListID, taskID string) (*domain.Task, error) {
	if _, err := s.CheckDeadline(ctx, userID, weekListID); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, weekListID, taskID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrTaskNotFound, "get task")
	}

	now := s.Now()
	if err := task.Mark(now); err != nil {
		return nil, err
	}
	if err := s.tasks.MarkDone(ctx, weekListID, taskID, now); err != nil {
		if errors.Is(err, domain.ErrAlreadyCompleted) {
			return nil, err
		}
		return nil, notFoundAs(err, domain.ErrTaskNotFound, "mark task done")
	}
	return task, nil
}

func (s *WeekListService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, "get user")
	}
	return user, nil
}

func (s *WeekListService) getOwned(ctx context.Context, userID, weekListID string) (*domain.WeekList, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}
	weekList, err := s.weekLists.GetByID(ctx, weekListID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrWeekListNotFound, "get week list")
	}
	if weekList.UserID != userID {
		return nil, domain.ErrWeekListNotFound
	}
	return weekList, nil
}

// notFoundAs swaps a repository ErrNotFound for the entity-specific error and
// wraps anything else with op.
func notFoundAs(err, notFound error, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
