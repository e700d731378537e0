package control_test

import (
	"testing"

	"github.com/momentics/zukou-go/control"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry_Counters(t *testing.T) {
	mr := control.NewMetricsRegistry()
	assert.True(t, mr.Updated().IsZero())

	mr.Add("reactor.batches", 1)
	mr.Add("reactor.batches", 2)
	mr.Set("reactor.sources", 3)

	assert.Equal(t, int64(3), mr.Counter("reactor.batches"))
	assert.Zero(t, mr.Counter("missing"))
	assert.False(t, mr.Updated().IsZero())

	snap := mr.GetSnapshot()
	assert.Equal(t, int64(3), snap["reactor.batches"])
	assert.Equal(t, 3, snap["reactor.sources"])

	snap["reactor.sources"] = 99
	assert.Equal(t, 3, mr.GetSnapshot()["reactor.sources"], "snapshot must be a copy")
}

func TestDebugProbes_DumpState(t *testing.T) {
	dp := control.NewDebugProbes()
	n := 0
	dp.RegisterProbe("b", func() any { n++; return n })
	dp.RegisterProbe("a", func() any { return "x" })

	assert.Equal(t, []string{"a", "b"}, dp.Names())
	assert.Equal(t, map[string]any{"a": "x", "b": 1}, dp.DumpState())
	assert.Equal(t, 2, dp.DumpState()["b"])
}

func TestRegisterPlatformProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)
	state := dp.DumpState()
	assert.Positive(t, state["platform.cpus"])
}
