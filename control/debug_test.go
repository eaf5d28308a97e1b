package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugProbesLifecycle(t *testing.T) {
	dp := NewDebugProbes()
	assert.Zero(t, dp.Len())

	dp.RegisterProbe("state", func() any { return "running" })
	dp.RegisterProbe("worker/a", func() any { return 1 })
	dp.RegisterProbe("worker/b", func() any { return 2 })
	dp.RegisterProbe("nil", nil) // ignored
	require.Equal(t, 3, dp.Len())

	out := dp.DumpState()
	assert.Equal(t, "running", out["state"])
	assert.Equal(t, 1, out["worker/a"])

	// a worker exit removes exactly its own probe
	dp.UnregisterProbe("worker/a")
	dp.UnregisterProbe("worker/unknown")
	require.Equal(t, 2, dp.Len())
	_, present := dp.DumpState()["worker/a"]
	assert.False(t, present)
}

func TestDebugProbesReplace(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("state", func() any { return "old" })
	dp.RegisterProbe("state", func() any { return "new" })
	assert.Equal(t, 1, dp.Len())
	assert.Equal(t, "new", dp.DumpState()["state"])
}

func TestMetricsRegistryCounters(t *testing.T) {
	mr := NewMetricsRegistry()
	mr.Inc("submitted", 1)
	mr.Inc("submitted", 2)
	mr.Set("executed", 5)
	assert.EqualValues(t, 3, mr.Get("submitted"))
	assert.EqualValues(t, 5, mr.Get("executed"))
	assert.Zero(t, mr.Get("missing"))

	snap := mr.GetSnapshot()
	assert.EqualValues(t, 3, snap["submitted"])
	snap["submitted"] = 99
	assert.EqualValues(t, 3, mr.Get("submitted"), "snapshot must be a copy")
}
