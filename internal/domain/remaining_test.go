package domain_test

import (
	"testing"
	"time"

	"github.com/msomdec/weeklist/internal/domain"
)

func TestRemainingUntil(t *testing.T) {
	deadline := t0.Add(domain.ActiveWindow)

	tests := []struct {
		name string
		now  time.Time
		want domain.TimeRemaining
		text string
	}{
		{"full week", t0, domain.TimeRemaining{Days: 7}, "7 D : 0 H : 0 M : 0 S"},
		{
			"mixed units truncate",
			deadline.Add(-(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second + 900*time.Millisecond)),
			domain.TimeRemaining{Days: 2, Hours: 3, Minutes: 4, Seconds: 5},
			"2 D : 3 H : 4 M : 5 S",
		},
		{"sub-second left", deadline.Add(-999 * time.Millisecond), domain.TimeRemaining{}, "0 D : 0 H : 0 M : 0 S"},
		{"exactly at deadline", deadline, domain.TimeRemaining{}, "0 D : 0 H : 0 M : 0 S"},
		{"past deadline clamps", deadline.Add(48 * time.Hour), domain.TimeRemaining{}, "0 D : 0 H : 0 M : 0 S"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.RemainingUntil(deadline, tc.now)
			if got != tc.want {
				t.Fatalf("RemainingUntil = %+v, want %+v", got, tc.want)
			}
			if got.String() != tc.text {
				t.Fatalf("String = %q, want %q", got.String(), tc.text)
			}
		})
	}
}

func TestRemainingUntil_NonIncreasing(t *testing.T) {
	deadline := t0.Add(domain.ActiveWindow)
	toSeconds := func(r domain.TimeRemaining) int {
		return ((r.Days*24+r.Hours)*60+r.Minutes)*60 + r.Seconds
	}

	prev := toSeconds(domain.RemainingUntil(deadline, t0))
	for now := t0; now.Before(deadline.Add(2 * time.Hour)); now = now.Add(37*time.Minute + 13*time.Second) {
		cur := toSeconds(domain.RemainingUntil(deadline, now))
		if cur > prev {
			t.Fatalf("remaining increased at %v: %d > %d", now, cur, prev)
		}
		if cur < 0 {
			t.Fatalf("remaining negative at %v", now)
		}
		prev = cur
	}
	if !domain.RemainingUntil(deadline, deadline.Add(time.Hour)).IsZero() {
		t.Fatal("expected zero remaining past deadline")
	}
}
