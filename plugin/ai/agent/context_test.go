package agent

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationContextAppendBound(t *testing.T) {
	conv := NewConversationContext("s1")

	for i := 0; i < 11; i++ {
		conv.Append("user", fmt.Sprintf("turn %d", i))
	}

	assert.Equal(t, MaxHistoryTurns, conv.Len())

	history := conv.History()
	require.Len(t, history, MaxHistoryTurns)
	// Oldest entry dropped, order preserved oldest-first.
	assert.Equal(t, "turn 1", history[0].Content)
	assert.Equal(t, "turn 10", history[MaxHistoryTurns-1].Content)
}

func TestConversationContextHistorySkipsEmptyTurns(t *testing.T) {
	conv := NewConversationContext("s1")
	conv.Append("user", "question")
	conv.Append("assistant", "")
	conv.Append("assistant", "answer")

	history := conv.History()
	require.Len(t, history, 2)
	assert.Equal(t, "question", history[0].Content)
	assert.Equal(t, "answer", history[1].Content)
}

func TestConversationContextClear(t *testing.T) {
	conv := NewConversationContext("s1")
	conv.Append("user", "hello")
	conv.Append("assistant", "hi")

	conv.Clear()
	assert.Equal(t, 0, conv.Len())
	assert.Empty(t, conv.History())
}

func TestConversationContextConcurrentAppend(t *testing.T) {
	conv := NewConversationContext("s1")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			conv.Append("user", fmt.Sprintf("turn %d", n))
			conv.History()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, MaxHistoryTurns, conv.Len())
}

func TestContextStoreSessionsAreIndependent(t *testing.T) {
	store := NewContextStore()

	a := store.GetOrCreate("session-a")
	b := store.GetOrCreate("session-b")
	a.Append("user", "only in a")

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
	assert.Same(t, a, store.GetOrCreate("session-a"))
	assert.Same(t, a, store.Get("session-a"))
	assert.Nil(t, store.Get("missing"))
}

func TestContextStoreDelete(t *testing.T) {
	store := NewContextStore()
	store.GetOrCreate("s")
	store.Delete("s")
	assert.Nil(t, store.Get("s"))
}

func TestContextStoreCleanupOld(t *testing.T) {
	store := NewContextStore()
	old := store.GetOrCreate("old")
	old.UpdatedAt = time.Now().Add(-2 * time.Hour)
	store.GetOrCreate("fresh")

	deleted := store.CleanupOld(time.Hour)
	assert.Equal(t, 1, deleted)
	assert.Nil(t, store.Get("old"))
	assert.NotNil(t, store.Get("fresh"))
}

func TestNewSessionID(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
