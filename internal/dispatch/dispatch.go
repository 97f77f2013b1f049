// Package dispatch provides the serialized event loop the realtime core runs
// on. All state mutation is funneled through a single goroutine, so the store,
// router, and toast queue never observe concurrent updates.
package dispatch

import (
	"context"
	"sync"
	"time"
)

// Loop executes submitted functions one at a time, in submission order.
// Timers re-enter the same queue, so delayed work is serialized with inbound
// events.
type Loop struct {
	queue  chan func()
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Timer is a handle for work scheduled with After. Stop prevents the function
// from running if it has not been enqueued yet.
type Timer struct {
	mu      sync.Mutex
	stopped bool
	t       *time.Timer
}

// Stop cancels the scheduled function. It is safe to call multiple times and
// after the timer has fired.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.t != nil {
		t.t.Stop()
	}
}

func (t *Timer) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// NewLoop creates and starts a Loop.
func NewLoop() *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		queue:  make(chan func(), 256),
		ctx:    ctx,
		cancel: cancel,
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Submit enqueues fn for execution on the loop. Submissions after Close are
// dropped.
func (l *Loop) Submit(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.ctx.Done():
	}
}

// After schedules fn to run on the loop after d elapses. The returned Timer
// can cancel the work before it fires.
func (l *Loop) After(d time.Duration, fn func()) *Timer {
	timer := &Timer{}
	timer.mu.Lock()
	timer.t = time.AfterFunc(d, func() {
		if timer.isStopped() {
			return
		}
		l.Submit(func() {
			if timer.isStopped() {
				return
			}
			fn()
		})
	})
	timer.mu.Unlock()
	return timer
}

// Close stops the loop and waits for the in-flight function to finish.
// Queued functions that have not started are discarded.
func (l *Loop) Close() {
	l.cancel()
	l.wg.Wait()
}
