package booking

import (
	"time"

	"petcare/internal/repository"
)

// Business hours used when a trainer has no weekly schedule configured.
const (
	defaultOpenHour  = 9
	defaultCloseHour = 17
	slotStepMinutes  = 30
)

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GenerateCandidates enumerates slot starts from open every step, keeping
// those whose whole duration fits before close. Pure function of its
// inputs.
func GenerateCandidates(open, close time.Time, step, duration time.Duration) []TimeSlot {
	if step <= 0 || duration <= 0 || !close.After(open) {
		return nil
	}

	var out []TimeSlot
	for cursor := open; !cursor.Add(duration).After(close); cursor = cursor.Add(step) {
		out = append(out, TimeSlot{Start: cursor, End: cursor.Add(duration)})
	}
	return out
}

// Overlaps implements half-open interval intersection: [s1,e1) and [s2,e2)
// conflict iff s1 < e2 && s2 < e1. Touching endpoints do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// FilterAvailable drops candidates that intersect any busy interval.
func FilterAvailable(candidates []TimeSlot, busy []repository.BusySlot) []TimeSlot {
	out := make([]TimeSlot, 0, len(candidates))
	for _, c := range candidates {
		conflict := false
		for _, b := range busy {
			if Overlaps(c.Start, c.End, b.Start, b.End) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, c)
		}
	}
	return out
}

// Occurrences expands a weekly recurrence: weeks=0 (or 1) means a single
// one-time booking, weeks=N means the base start plus N-1 repeats at
// one-week offsets, same time-of-day.
func Occurrences(base time.Time, weeks int) []time.Time {
	if weeks <= 1 {
		return []time.Time{base}
	}

	out := make([]time.Time, 0, weeks)
	for i := 0; i < weeks; i++ {
		out = append(out, base.AddDate(0, 0, 7*i))
	}
	return out
}

// windowOnDay anchors an "HH:MM" open/close pair to a concrete date in UTC.
func windowOnDay(day time.Time, openStr, closeStr string) (time.Time, time.Time, error) {
	openT, err := time.Parse("15:04", openStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	closeT, err := time.Parse("15:04", closeStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	open := time.Date(day.Year(), day.Month(), day.Day(), openT.Hour(), openT.Minute(), 0, 0, time.UTC)
	close := time.Date(day.Year(), day.Month(), day.Day(), closeT.Hour(), closeT.Minute(), 0, 0, time.UTC)
	return open, close, nil
}

func defaultWindow(day time.Time) (time.Time, time.Time) {
	open := time.Date(day.Year(), day.Month(), day.Day(), defaultOpenHour, 0, 0, 0, time.UTC)
	close := time.Date(day.Year(), day.Month(), day.Day(), defaultCloseHour, 0, 0, 0, time.UTC)
	return open, close
}
