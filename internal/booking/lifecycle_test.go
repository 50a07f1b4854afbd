package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	next, err := Transition(StatusWaiting, true)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, next)

	next, err = Transition(StatusWaiting, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, next)

	for _, current := range []Status{StatusApproved, StatusRejected} {
		for _, approved := range []bool{true, false} {
			_, err := Transition(current, approved)
			assert.ErrorIs(t, err, ErrNotWaiting)
			assert.Contains(t, err.Error(), string(current))
		}
	}
}

func TestValidateRange(t *testing.T) {
	now := T.Add(300 * time.Millisecond)

	assert.NoError(t, ValidateRange(T.Add(24*time.Hour), T.Add(48*time.Hour), now))
	assert.NoError(t, ValidateRange(T, T.Add(time.Hour), now), "current second is present")

	assert.ErrorIs(t, ValidateRange(T.Add(time.Hour), T.Add(time.Hour), now), ErrInvalidTimeRange)
	assert.ErrorIs(t, ValidateRange(T.Add(2*time.Hour), T.Add(time.Hour), now), ErrInvalidTimeRange)
	assert.ErrorIs(t, ValidateRange(T.Add(-time.Minute), T.Add(time.Hour), now), ErrStartInPast)
	assert.ErrorIs(t, ValidateRange(time.Time{}, T.Add(time.Hour), now), ErrDatesRequired)
}
