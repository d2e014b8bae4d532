package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	for _, valid := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		state, err := ParseState(valid)
		require.NoError(t, err)
		assert.Equal(t, State(valid), state)
	}

	for _, invalid := range []string{"", "all", "APPROVED", "bogus"} {
		_, err := ParseState(invalid)
		assert.ErrorIs(t, err, ErrInvalidState, "input %q", invalid)
	}
}

func TestStateFilter(t *testing.T) {
	now := baseTime

	t.Run("ALL applies no bounds", func(t *testing.T) {
		f := stateFilter(StateAll, now)
		assert.Equal(t, Filter{}, f)
	})

	t.Run("CURRENT brackets now", func(t *testing.T) {
		f := stateFilter(StateCurrent, now)
		require.NotNil(t, f.StartBefore)
		require.NotNil(t, f.EndAfter)
		assert.Equal(t, now, *f.StartBefore)
		assert.Equal(t, now, *f.EndAfter)
		assert.Nil(t, f.StartAfter)
		assert.Nil(t, f.EndBefore)
		assert.Empty(t, f.Status)
	})

	t.Run("PAST bounds end only", func(t *testing.T) {
		f := stateFilter(StatePast, now)
		require.NotNil(t, f.EndBefore)
		assert.Equal(t, now, *f.EndBefore)
		assert.Nil(t, f.StartBefore)
		assert.Nil(t, f.StartAfter)
		assert.Nil(t, f.EndAfter)
	})

	t.Run("FUTURE bounds start only", func(t *testing.T) {
		f := stateFilter(StateFuture, now)
		require.NotNil(t, f.StartAfter)
		assert.Equal(t, now, *f.StartAfter)
		assert.Nil(t, f.StartBefore)
		assert.Nil(t, f.EndBefore)
		assert.Nil(t, f.EndAfter)
	})

	t.Run("status buckets ignore time", func(t *testing.T) {
		assert.Equal(t, Filter{Status: StatusWaiting}, stateFilter(StateWaiting, now))
		assert.Equal(t, Filter{Status: StatusRejected}, stateFilter(StateRejected, now))
	})
}
