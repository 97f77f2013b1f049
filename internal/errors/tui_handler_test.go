package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUIHandlerRecordsMessages(t *testing.T) {
	h := NewTUIHandler(nil)

	_, ok := h.Latest()
	assert.False(t, ok)

	h.Warning("server not reachable")
	h.Success("marked read")

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "marked read", latest.Text)
	assert.Equal(t, MessageTypeSuccess, latest.Type)

	history := h.History()
	require.Len(t, history, 2)
	assert.Equal(t, MessageTypeWarning, history[0].Type)

	h.Clear()
	assert.Empty(t, h.History())
	_, ok = h.Latest()
	assert.False(t, ok)
}

func TestTUIHandlerReportHook(t *testing.T) {
	var seen []Message
	h := NewTUIHandler(func(msg Message) { seen = append(seen, msg) })

	h.Error("transport gone")
	h.Info("reconnecting")

	require.Len(t, seen, 2)
	assert.Equal(t, MessageTypeError, seen[0].Type)
	assert.Equal(t, "reconnecting", seen[1].Text)
}
