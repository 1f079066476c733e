package badger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/dalil/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EmptyHistoryForFreshUser(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	history, err := store.History(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestStore_SaveAndLoadTurns(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveTurn(ctx, "user-1", "first question", "first answer"))
	require.NoError(t, store.SaveTurn(ctx, "user-1", "second question", "second answer"))

	history, err := store.History(ctx, "user-1")
	require.NoError(t, err)

	assert.Contains(t, history, "Human: first question")
	assert.Contains(t, history, "AI: first answer")
	assert.Less(t, strings.Index(history, "first answer"), strings.Index(history, "second question"))
}

func TestStore_Turns(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, store.SaveTurn(ctx, "user-1", "q1", "a1"))
	require.NoError(t, store.SaveTurn(ctx, "user-1", "q2", "a2"))

	turns, err := store.Turns(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, turns, 2)

	assert.Equal(t, "q1", turns[0].Question)
	assert.Equal(t, "a1", turns[0].Answer)
	assert.Equal(t, "q2", turns[1].Question)
	assert.True(t, turns[0].Timestamp.After(before))
}

func TestStore_UsersAreIsolated(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveTurn(ctx, "alice", "alice question", "alice answer"))
	require.NoError(t, store.SaveTurn(ctx, "bob", "bob question", "bob answer"))

	aliceHistory, err := store.History(ctx, "alice")
	require.NoError(t, err)
	assert.Contains(t, aliceHistory, "alice question")
	assert.NotContains(t, aliceHistory, "bob question")
}

func TestStore_UserIDsWithSeparatorBytes(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	// "a" and "a:b" must not share a key prefix.
	require.NoError(t, store.SaveTurn(ctx, "a", "short id question", "short id answer"))
	require.NoError(t, store.SaveTurn(ctx, "a:b", "long id question", "long id answer"))

	history, err := store.History(ctx, "a")
	require.NoError(t, err)
	assert.Contains(t, history, "short id question")
	assert.NotContains(t, history, "long id question")
}

func TestStore_EmptyUserID(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	_, err = store.History(ctx, "")
	assert.ErrorIs(t, err, core.ErrEmptyUserID)

	err = store.SaveTurn(ctx, "", "q", "a")
	assert.ErrorIs(t, err, core.ErrEmptyUserID)
}

func TestStore_ConcurrentSavesAreIsolated(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	const turns = 10
	var wg sync.WaitGroup
	for _, user := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			for i := 0; i < turns; i++ {
				err := store.SaveTurn(ctx, user,
					fmt.Sprintf("%s question %d", user, i),
					fmt.Sprintf("%s answer %d", user, i))
				assert.NoError(t, err)
			}
		}(user)
	}
	wg.Wait()

	got, err := store.Turns(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, got, turns)
	for _, turn := range got {
		assert.Contains(t, turn.Question, "alice")
	}
}

func TestMarshalTurn_RoundTrip(t *testing.T) {
	turn := &core.Turn{
		Question:  "ما هي حقوق الموظف؟",
		Answer:    "Employees are entitled to annual leave.",
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := unmarshalTurn(marshalTurn(turn))
	require.NoError(t, err)
	assert.Equal(t, turn.Question, decoded.Question)
	assert.Equal(t, turn.Answer, decoded.Answer)
	assert.True(t, turn.Timestamp.Equal(decoded.Timestamp))
}

func TestUnmarshalTurn_TruncatedData(t *testing.T) {
	turn := &core.Turn{Question: "q", Answer: "a", Timestamp: time.Now().UTC()}
	data := marshalTurn(turn)

	_, err := unmarshalTurn(data[:1])
	assert.Error(t, err)
}
