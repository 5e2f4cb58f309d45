package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreUpdateReplacesAtomically(t *testing.T) {
	st := NewStore()
	assert.Equal(t, uint64(0), st.Generation())
	assert.Empty(t, st.Current().Processes)

	first := []ProcessRecord{{PID: 1, Name: "init"}, {PID: 42, Name: "worker"}}
	st.Update(time.Now(), first, SystemSummary{})
	assert.Equal(t, uint64(1), st.Generation())
	assert.Len(t, st.Current().Processes, 2)

	second := []ProcessRecord{{PID: 1, Name: "init"}}
	st.Update(time.Now(), second, SystemSummary{})
	assert.Equal(t, uint64(2), st.Generation())
	assert.Len(t, st.Current().Processes, 1)
	assert.Len(t, st.Previous().Processes, 2)
}

func TestStoreVanished(t *testing.T) {
	st := NewStore()
	st.Update(time.Now(), []ProcessRecord{{PID: 1}, {PID: 2}, {PID: 3}}, SystemSummary{})
	st.Update(time.Now(), []ProcessRecord{{PID: 1}, {PID: 3}}, SystemSummary{})

	gone := st.Vanished()
	require.Len(t, gone, 1)
	assert.Equal(t, int32(2), gone[0])
}

func TestStoreVanishedEmptyHistory(t *testing.T) {
	st := NewStore()
	assert.Empty(t, st.Vanished())

	st.Update(time.Now(), []ProcessRecord{{PID: 7}}, SystemSummary{})
	assert.Empty(t, st.Vanished(), "first update has no prior snapshot to diff against")
}

func TestSnapshotFind(t *testing.T) {
	snap := Snapshot{Processes: []ProcessRecord{{PID: 5, Name: "a"}, {PID: 9, Name: "b"}}}

	rec := snap.Find(9)
	require.NotNil(t, rec)
	assert.Equal(t, "b", rec.Name)
	assert.Nil(t, snap.Find(1234))
}
