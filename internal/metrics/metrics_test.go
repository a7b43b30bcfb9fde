package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	var m Session
	assert.Equal(t, 0.0, m.Snapshot()["avg_tick_ms"])

	m.AddTicks(4, 8_000_000)
	m.AddTicks(0, 1_000_000)
	m.SetTotals(7, 3)
	m.IncAccepted()
	m.IncDropped()

	snap := m.Snapshot()
	assert.Equal(t, int64(4), snap["tick_count"])
	assert.Equal(t, 2.0, snap["avg_tick_ms"])
	assert.Equal(t, int64(7), snap["shots"])
	assert.Equal(t, int64(3), snap["kills"])
	assert.Equal(t, int64(1), snap["inputs_accepted"])
	assert.Equal(t, int64(1), snap["inputs_dropped"])
}

func TestConcurrentCounters(t *testing.T) {
	var m Session
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m.IncAccepted()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(800), m.Snapshot()["inputs_accepted"])
}
