package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"petcare/internal/repository"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(base time.Time, hour, min int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, min, 0, 0, time.UTC)
}

func TestGenerateCandidates_WithinBusinessHours(t *testing.T) {
	d := day(2024, time.March, 4)
	open, close := defaultWindow(d)

	slots := GenerateCandidates(open, close, 30*time.Minute, 60*time.Minute)

	assert.NotEmpty(t, slots)
	for _, s := range slots {
		assert.False(t, s.Start.Before(open), "slot starts before opening: %v", s.Start)
		assert.False(t, s.End.After(close), "slot ends after closing: %v", s.End)
	}

	// 09:00 through 16:00 inclusive, every 30 minutes
	assert.Equal(t, at(d, 9, 0), slots[0].Start)
	assert.Equal(t, at(d, 16, 0), slots[len(slots)-1].Start)
	assert.Len(t, slots, 15)
}

func TestGenerateCandidates_45MinuteServiceNeverPassesClose(t *testing.T) {
	d := day(2024, time.March, 4)
	open, close := defaultWindow(d)

	slots := GenerateCandidates(open, close, 30*time.Minute, 45*time.Minute)

	for _, s := range slots {
		assert.False(t, s.End.After(close))
	}
	// with a 30-minute step the last fitting start is 16:00 (ends 16:45);
	// 16:30 would end at 17:15 and must not appear
	last := slots[len(slots)-1]
	assert.Equal(t, at(d, 16, 0), last.Start)
	assert.Equal(t, at(d, 16, 45), last.End)
}

func TestGenerateCandidates_ExactFitAtClose(t *testing.T) {
	d := day(2024, time.March, 4)
	// 16:15 + 45min = 17:00 lands exactly on close and is allowed
	open := at(d, 16, 15)
	close := at(d, 17, 0)

	slots := GenerateCandidates(open, close, 30*time.Minute, 45*time.Minute)

	assert.Len(t, slots, 1)
	assert.Equal(t, at(d, 16, 15), slots[0].Start)
	assert.Equal(t, at(d, 17, 0), slots[0].End)
}

func TestGenerateCandidates_DegenerateInputs(t *testing.T) {
	d := day(2024, time.March, 4)
	open, close := defaultWindow(d)

	assert.Nil(t, GenerateCandidates(open, close, 0, 30*time.Minute))
	assert.Nil(t, GenerateCandidates(open, close, 30*time.Minute, 0))
	assert.Nil(t, GenerateCandidates(close, open, 30*time.Minute, 30*time.Minute))
}

func TestOverlaps_HalfOpenSemantics(t *testing.T) {
	d := day(2024, time.March, 4)

	// touching intervals do not overlap
	assert.False(t, Overlaps(at(d, 9, 0), at(d, 10, 0), at(d, 10, 0), at(d, 11, 0)))
	assert.False(t, Overlaps(at(d, 10, 0), at(d, 11, 0), at(d, 9, 0), at(d, 10, 0)))

	// any shared interior point conflicts
	assert.True(t, Overlaps(at(d, 9, 0), at(d, 10, 0), at(d, 9, 59), at(d, 10, 30)))
	assert.True(t, Overlaps(at(d, 9, 30), at(d, 10, 30), at(d, 9, 0), at(d, 10, 0)))
	assert.True(t, Overlaps(at(d, 9, 0), at(d, 11, 0), at(d, 9, 30), at(d, 10, 0)))
}

func TestFilterAvailable_ExcludesConflictingStarts(t *testing.T) {
	d := day(2024, time.March, 4)
	_, close := defaultWindow(d)

	// an existing 09:00-10:00 booking with 30-minute candidates:
	// everything starting in (08:30, 10:00) must be excluded,
	// 08:30 (ends 09:00) and 10:00 stay
	busy := []repository.BusySlot{{Start: at(d, 9, 0), End: at(d, 10, 0)}}

	candidates := GenerateCandidates(at(d, 8, 0), close, 30*time.Minute, 30*time.Minute)
	free := FilterAvailable(candidates, busy)

	starts := make(map[string]bool)
	for _, s := range free {
		starts[s.Start.Format("15:04")] = true
	}

	assert.True(t, starts["08:30"], "slot ending exactly at the busy start must stay")
	assert.False(t, starts["09:00"])
	assert.False(t, starts["09:30"])
	assert.True(t, starts["10:00"], "slot starting exactly at the busy end must stay")
}

func TestFilterAvailable_NoBusySlots(t *testing.T) {
	d := day(2024, time.March, 4)
	open, close := defaultWindow(d)

	candidates := GenerateCandidates(open, close, 30*time.Minute, 30*time.Minute)
	free := FilterAvailable(candidates, nil)

	assert.Equal(t, candidates, free)
}

func TestOccurrences_WeeklyExpansion(t *testing.T) {
	base := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	dates := Occurrences(base, 4)

	assert.Len(t, dates, 4)
	assert.Equal(t, base, dates[0])
	assert.Equal(t, time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC), dates[1])
	assert.Equal(t, time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC), dates[2])
	assert.Equal(t, time.Date(2024, time.January, 22, 9, 0, 0, 0, time.UTC), dates[3])

	// same time-of-day for all occurrences
	for _, d := range dates {
		assert.Equal(t, 9, d.Hour())
		assert.Equal(t, 0, d.Minute())
	}
}

func TestOccurrences_OneTime(t *testing.T) {
	base := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, []time.Time{base}, Occurrences(base, 0))
	assert.Equal(t, []time.Time{base}, Occurrences(base, 1))
}

func TestWindowOnDay(t *testing.T) {
	d := day(2024, time.March, 6)

	open, close, err := windowOnDay(d, "10:30", "18:00")
	assert.NoError(t, err)
	assert.Equal(t, at(d, 10, 30), open)
	assert.Equal(t, at(d, 18, 0), close)

	_, _, err = windowOnDay(d, "not-a-time", "18:00")
	assert.Error(t, err)
}
