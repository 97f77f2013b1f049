package errors

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingOutput captures everything written through the handler.
type recordingOutput struct {
	mu       sync.Mutex
	errors   []string
	warnings []string
	infos    []string
	success  []string

	// onError lets a test raise a nested failure from inside the sink.
	onError func()
}

func (o *recordingOutput) Error(msgs ...string) {
	o.mu.Lock()
	o.errors = append(o.errors, msgs...)
	hook := o.onError
	o.onError = nil
	o.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (o *recordingOutput) Warning(msgs ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, msgs...)
}

func (o *recordingOutput) Info(msgs ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.infos = append(o.infos, msgs...)
}

func (o *recordingOutput) Success(msgs ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.success = append(o.success, msgs...)
}

func TestCLIHandlerForwardsEachLevel(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	h.Error("transport gone")
	h.Warning("server not reachable")
	h.Info("reconnecting")
	h.Success("inbox cleared")

	assert.Equal(t, []string{"transport gone"}, out.errors)
	assert.Equal(t, []string{"server not reachable"}, out.warnings)
	assert.Equal(t, []string{"reconnecting"}, out.infos)
	assert.Equal(t, []string{"inbox cleared"}, out.success)
}

func TestCLIHandlerNestedErrorDoesNotRecurse(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	// A failure raised while the first failure is being reported must still
	// reach the sink without re-entering the guard.
	out.onError = func() { h.Error("nested failure") }
	h.Error("original failure")

	require.Equal(t, []string{"original failure", "nested failure"}, out.errors)

	// The guard resets once reporting finishes.
	h.Error("later failure")
	assert.Contains(t, out.errors, "later failure")
}

func TestCLIHandlerConcurrentReports(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Error("boom")
			h.Success("done")
		}()
	}
	wg.Wait()

	assert.Len(t, out.errors, 16)
	assert.Len(t, out.success, 16)
}

func TestNewDefaultCLIHandler(t *testing.T) {
	h := NewDefaultCLIHandler()
	require.NotNil(t, h)
	assert.Implements(t, (*ErrorHandler)(nil), h)
}
