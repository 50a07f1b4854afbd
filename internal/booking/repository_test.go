package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatePredicate(t *testing.T) {
	assert.Nil(t, statePredicate(StateAll, T))

	cases := map[State]struct {
		sql  string
		args []any
	}{
		StateCurrent:  {"(b.start_date <= ? AND b.end_date > ?)", []any{T, T}},
		StatePast:     {"b.end_date < ?", []any{T}},
		StateFuture:   {"b.start_date > ?", []any{T}},
		StateWaiting:  {"b.status = ?", []any{StatusWaiting}},
		StateRejected: {"b.status = ?", []any{StatusRejected}},
	}
	for state, want := range cases {
		pred := statePredicate(state, T)
		require.NotNil(t, pred, state)

		sql, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, want.sql, sql, state)
		assert.Equal(t, want.args, args, state)
	}
}
