package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("07:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(7*60+30), got)
	assert.Equal(t, "07:30", got.String())

	got, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())

	for _, in := range []string{"", "7:30", "24:00", "12:60", "12-30", "ab:cd", "07:300", " 07:30"} {
		_, err := ParseTimeOfDay(in)
		assert.ErrorIs(t, err, ErrInvalidTime, "input %q", in)
	}
}

func TestParsePriority(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		got, err := ParsePriority(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePriority("high")
	assert.ErrorIs(t, err, ErrInvalidPriority)
	_, err = ParsePriority("")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestNewTask(t *testing.T) {
	task, err := NewTask("  Morning Exercise ", "07:00", "08:00", "High")
	require.NoError(t, err)

	assert.Equal(t, "Morning Exercise", task.Description())
	assert.Equal(t, "07:00", task.Start().String())
	assert.Equal(t, "08:00", task.End().String())
	assert.Equal(t, PriorityHigh, task.Priority())
	assert.Equal(t, time.Hour, task.Duration())
	assert.False(t, task.IsZero())
	assert.Equal(t, "07:00 - 08:00: Morning Exercise [High]", task.String())
}

func TestNewTask_ValidationErrors(t *testing.T) {
	cases := []struct {
		name     string
		desc     string
		start    string
		end      string
		priority string
		field    string
		reason   error
	}{
		{"empty description", "   ", "07:00", "08:00", "Low", "description", ErrEmptyDescription},
		{"bad start", "x", "7:00", "08:00", "Low", "start", ErrInvalidTime},
		{"bad end", "x", "07:00", "25:00", "Low", "end", ErrInvalidTime},
		{"zero length", "x", "07:00", "07:00", "Low", "end", ErrInvalidRange},
		{"inverted", "x", "09:00", "08:00", "Low", "end", ErrInvalidRange},
		{"unknown priority", "x", "07:00", "08:00", "Urgent", "priority", ErrInvalidPriority},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task, err := NewTask(tc.desc, tc.start, tc.end, tc.priority)
			require.Error(t, err)
			assert.True(t, task.IsZero())
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tc.reason)
			assert.NotErrorIs(t, err, ErrConflict)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestTask_Overlaps(t *testing.T) {
	a, _ := NewTask("a", "07:00", "08:00", "Low")
	back, _ := NewTask("b", "08:00", "09:00", "Low")
	front, _ := NewTask("c", "06:00", "07:00", "Low")
	partial, _ := NewTask("d", "07:30", "08:30", "Low")
	inside, _ := NewTask("e", "07:15", "07:45", "Low")
	around, _ := NewTask("f", "06:00", "10:00", "Low")

	assert.False(t, a.Overlaps(back))
	assert.False(t, back.Overlaps(a))
	assert.False(t, a.Overlaps(front))
	assert.True(t, a.Overlaps(partial))
	assert.True(t, partial.Overlaps(a))
	assert.True(t, a.Overlaps(inside))
	assert.True(t, a.Overlaps(around))
}

func TestErrors_Kinds(t *testing.T) {
	attempted, _ := NewTask("Training Session", "09:30", "10:30", "High")
	existing, _ := NewTask("Team Meeting", "09:00", "10:00", "Medium")

	var err error = &ConflictError{Attempted: attempted, Existing: existing}
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t,
		`task "Training Session" (09:30 - 10:30) conflicts with existing task "Team Meeting" (09:00 - 10:00)`,
		err.Error())

	err = &NotFoundError{Description: "X"}
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, `task "X" not found`, err.Error())
}
