package handler

import (
	"time"

	"github.com/msomdec/weeklist/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the service.
type UserDTO struct {
	ID        string `json:"id"`
	FullName  string `json:"fullname"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Mobile    string `json:"mobile"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Age:       u.Age,
		Gender:    u.Gender,
		Mobile:    u.Mobile,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// TimeRemainingDTO is the structured form of the time left on a week list.
type TimeRemainingDTO struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func toTimeRemainingDTO(t domain.TimeRemaining) TimeRemainingDTO {
	return TimeRemainingDTO{Days: t.Days, Hours: t.Hours, Minutes: t.Minutes, Seconds: t.Seconds}
}

// TaskDTO is the JSON representation of a task.
type TaskDTO struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Marked      bool    `json:"marked"`
	CompletedAt *string `json:"completedAt"`
	CreatedAt   string  `json:"createdAt"`
}

func toTaskDTO(t domain.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Description: t.Description,
		Marked:      t.Marked,
		CompletedAt: formatTimePtr(t.CompletedAt),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

func toTaskDTOs(tasks []domain.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t)
	}
	return dtos
}

// WeekListSummaryDTO is a week list as listed for its owner.
type WeekListSummaryDTO struct {
	ID            string           `json:"id"`
	Name          string           `json:"weekListName"`
	Description   string           `json:"description"`
	Tasks         []TaskDTO        `json:"tasks"`
	TimeLeft      string           `json:"timeLeft"`
	TimeRemaining TimeRemainingDTO `json:"timeRemaining"`
	MarkedAsDone  bool             `json:"markedAsDone"`
	CompletedAt   *string          `json:"completedAt"`
}

func toWeekListSummaryDTO(w domain.WeekList, now time.Time) WeekListSummaryDTO {
	left := w.Remaining(now)
	return WeekListSummaryDTO{
		ID:            w.ID,
		Name:          w.Name,
		Description:   w.Description,
		Tasks:         toTaskDTOs(w.Tasks),
		TimeLeft:      left.String(),
		TimeRemaining: toTimeRemainingDTO(left),
		MarkedAsDone:  w.Completed,
		CompletedAt:   formatTimePtr(w.CompletedAt),
	}
}

func toWeekListSummaryDTOs(weekLists []domain.WeekList, now time.Time) []WeekListSummaryDTO {
	dtos := make([]WeekListSummaryDTO, len(weekLists))
	for i, w := range weekLists {
		dtos[i] = toWeekListSummaryDTO(w, now)
	}
	return dtos
}

// WeekListDTO is the full detail of a week list.
type WeekListDTO struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Name          string           `json:"weekListName"`
	Description   string           `json:"description"`
	Tasks         []TaskDTO        `json:"tasks"`
	TimeLeft      string           `json:"timeLeft"`
	TimeRemaining TimeRemainingDTO `json:"timeRemaining"`
	State         string           `json:"state"`
	Completed     bool             `json:"completed"`
	CompletedAt   *string          `json:"completedAt"`
	CreatedAt     string           `json:"createdAt"`
	ActiveUntil   string           `json:"activeUntil"`
}

func toWeekListDTO(w *domain.WeekList, now time.Time) WeekListDTO {
	left := w.Remaining(now)
	return WeekListDTO{
		ID:            w.ID,
		UserID:        w.UserID,
		Name:          w.Name,
		Description:   w.Description,
		Tasks:         toTaskDTOs(w.Tasks),
		TimeLeft:      left.String(),
		TimeRemaining: toTimeRemainingDTO(left),
		State:         string(w.State),
		Completed:     w.Completed,
		CompletedAt:   formatTimePtr(w.CompletedAt),
		CreatedAt:     w.CreatedAt.Format(time.RFC3339),
		ActiveUntil:   w.ActiveUntil.Format(time.RFC3339),
	}
}

func toWeekListDTOs(weekLists []domain.WeekList, now time.Time) []WeekListDTO {
	dtos := make([]WeekListDTO, len(weekLists))
	for i := range weekLists {
		dtos[i] = toWeekListDTO(&weekLists[i], now)
	}
	return dtos
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
