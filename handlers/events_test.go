package handlers

import (
	"strings"
	"testing"

	"github.com/biosecret/go-todo/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSSEMessage(t *testing.T) {
	msg, err := formatSSEMessage("todo.added", notify.Event{Kind: notify.KindTodoAdded, User: "alice"})
	require.NoError(t, err)

	lines := strings.Split(msg, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "event: todo.added", lines[0])
	assert.Equal(t, "retry: 15000", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], `data: {"data":{"kind":"todo.added","user":"alice"`))
	assert.True(t, strings.HasSuffix(msg, "\n\n"))
}

func TestFormatSSEMessageRejectsUnencodable(t *testing.T) {
	_, err := formatSSEMessage("bad", make(chan int))
	assert.Error(t, err)
}
