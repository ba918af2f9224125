// Package happyhour decides whether a venue's discount window covers a
// given time of day. All inputs are 24-hour "HH:MM" strings at minute
// granularity, local to the evaluating process.
package happyhour

import (
	"fmt"
	"time"
)

// Evaluate reports whether now falls inside the window [start, end],
// inclusive on both ends. A window whose start is later than its end
// wraps past midnight: 22:00-02:00 is active at 23:30 and at 01:00.
func Evaluate(start, end, now string) (bool, error) {
	s, err := minuteOfDay(start)
	if err != nil {
		return false, err
	}
	e, err := minuteOfDay(end)
	if err != nil {
		return false, err
	}
	n, err := minuteOfDay(now)
	if err != nil {
		return false, err
	}

	if s <= e {
		return n >= s && n <= e, nil
	}
	// Overnight window.
	return n >= s || n <= e, nil
}

// IsActive is Evaluate with malformed input treated as inactive.
func IsActive(start, end, now string) bool {
	active, err := Evaluate(start, end, now)
	if err != nil {
		return false
	}
	return active
}

// ActiveAt evaluates the window against a wall-clock instant.
func ActiveAt(start, end string, t time.Time) bool {
	return IsActive(start, end, t.Format("15:04"))
}

func minuteOfDay(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%2d:%2d", &h, &m); err != nil {
		return 0, fmt.Errorf("malformed time of day %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", hhmm)
	}
	return h*60 + m, nil
}
