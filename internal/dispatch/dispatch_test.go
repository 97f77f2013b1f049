package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_SubmitRunsInOrder(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})

	for i := 1; i <= 5; i++ {
		i := i
		loop.Submit(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == 5 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not drain submissions")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestLoop_AfterRunsOnLoop(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	fired := make(chan struct{})
	loop.After(10*time.Millisecond, func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled function never ran")
	}
}

func TestTimer_StopPreventsExecution(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	var mu sync.Mutex
	fired := false
	timer := loop.After(20*time.Millisecond, func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})
	timer.Stop()

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired)
}

func TestTimer_StopIsIdempotent(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	timer := loop.After(time.Hour, func() {})
	require.NotNil(t, timer)
	timer.Stop()
	timer.Stop()
}

func TestLoop_SubmitAfterCloseIsDropped(t *testing.T) {
	loop := NewLoop()
	loop.Close()

	// Must not panic or block.
	loop.Submit(func() { t.Error("must not run after close") })
	time.Sleep(20 * time.Millisecond)
}
