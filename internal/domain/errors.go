package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidToken      = errors.New("invalid token")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrLimitExceeded     = errors.New("active week list limit exceeded")
	ErrAlreadyCompleted  = errors.New("already completed")
	ErrEditWindowExpired = errors.New("edit window expired")
	ErrDeadlinePassed    = errors.New("deadline passed")
)

// Entity-specific not-found errors. All of them match ErrNotFound with errors.Is.
var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrWeekListNotFound = fmt.Errorf("week list %w", ErrNotFound)
	ErrTaskNotFound     = fmt.Errorf("task %w", ErrNotFound)
)
