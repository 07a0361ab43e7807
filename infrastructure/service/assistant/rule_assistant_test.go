package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/domain/entity"
)

func reply(t *testing.T, message string, stats entity.TaskStats) string {
	t.Helper()
	a := NewRuleAssistant()
	out, err := a.Reply(context.Background(), message, outbound.AssistantContext{
		UserName: "Jane",
		Stats:    stats,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	return out
}

func TestReplyGreetingUsesName(t *testing.T) {
	out := reply(t, "Hello!", entity.TaskStats{})
	assert.Contains(t, out, "Jane")
}

func TestReplyTaskCount(t *testing.T) {
	out := reply(t, "how many tasks do I have?", entity.TaskStats{Total: 5, Completed: 2, Pending: 3})
	assert.Contains(t, out, "5 total tasks")
	assert.Contains(t, out, "2 completed")
	assert.Contains(t, out, "3 pending")
}

func TestReplyTaskCountEmpty(t *testing.T) {
	out := reply(t, "how many tasks do I have?", entity.TaskStats{})
	assert.Contains(t, out, "don't have any tasks yet")
}

func TestReplyPending(t *testing.T) {
	assert.Contains(t, reply(t, "what's left to do?", entity.TaskStats{Pending: 1}), "1 pending task.")
	assert.Contains(t, reply(t, "anything pending?", entity.TaskStats{}), "no pending tasks")
}

func TestReplyCompleted(t *testing.T) {
	assert.Contains(t, reply(t, "what have I finished?", entity.TaskStats{Completed: 4}), "completed 4 tasks")
}

func TestReplyAnalytics(t *testing.T) {
	out := reply(t, "show me my stats", entity.TaskStats{Total: 4, Completed: 1, CompletionRate: 25})
	assert.Contains(t, out, "25%")
}

func TestReplyDeleteNeedsTaskWord(t *testing.T) {
	out := reply(t, "delete a task please", entity.TaskStats{})
	assert.Contains(t, out, "delete button")
}

func TestReplyFallsBackToName(t *testing.T) {
	a := NewRuleAssistant()
	out, err := a.Reply(context.Background(), "goodbye", outbound.AssistantContext{})
	require.NoError(t, err)
	assert.Contains(t, out, "Goodbye, there!")
}

func TestReplyRulePrecedence(t *testing.T) {
	// Greeting wins over any later rule when the message starts with one
	out := reply(t, "hey, how many tasks do I have?", entity.TaskStats{Total: 2})
	assert.False(t, strings.Contains(out, "2 total tasks"), "greeting rule should match first: %q", out)
}

func TestReplyDefault(t *testing.T) {
	out := reply(t, "quux flibble", entity.TaskStats{})
	assert.NotEmpty(t, out)
}
