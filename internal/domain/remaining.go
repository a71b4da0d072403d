package domain

import (
	"fmt"
	"time"
)

// TimeRemaining is a duration split into whole days, hours, minutes and seconds.
type TimeRemaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// RemainingUntil decomposes max(deadline-now, 0), truncating each unit.
func RemainingUntil(deadline, now time.Time) TimeRemaining {
	left := max(deadline.Sub(now), 0)

	const day = 24 * time.Hour
	days := left / day
	left -= days * day
	hours := left / time.Hour
	left -= hours * time.Hour
	minutes := left / time.Minute
	left -= minutes * time.Minute

	return TimeRemaining{
		Days:    int(days),
		Hours:   int(hours),
		Minutes: int(minutes),
		Seconds: int(left / time.Second),
	}
}

// IsZero reports whether no time is left.
func (t TimeRemaining) IsZero() bool {
	return t == TimeRemaining{}
}

func (t TimeRemaining) String() string {
	return fmt.Sprintf("%d D : %d H : %d M : %d S", t.Days, t.Hours, t.Minutes, t.Seconds)
}
