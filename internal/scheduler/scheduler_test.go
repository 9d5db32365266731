package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsTask(t *testing.T) {
	var runs atomic.Int64
	s := New(10*time.Millisecond, func() { runs.Add(1) })

	s.Start()
	assert.True(t, s.IsRunning())

	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	assert.False(t, s.IsRunning())

	settled := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, runs.Load())
}

func TestScheduler_FirstRunPrecedesFirstTick(t *testing.T) {
	var runs atomic.Int64
	s := New(time.Hour, func() { runs.Add(1) })

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	var runs atomic.Int64
	s := New(10*time.Millisecond, func() { runs.Add(1) })

	s.Start()
	s.Start()
	defer s.Stop()

	assert.True(t, s.IsRunning())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := New(time.Second, func() {})
	s.Stop()
	assert.False(t, s.IsRunning())
}
