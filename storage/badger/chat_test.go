package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/civiclens/civiclens/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupChatRepo(t *testing.T) *ChatRepository {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	repo, err := NewChatRepository(backend)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendTurns(t *testing.T) {
	repo := setupChatRepo(t)
	ctx := context.Background()

	t.Run("generates IDs and timestamps", func(t *testing.T) {
		turns, err := repo.AppendTurns(ctx,
			&core.ChatTurn{Role: core.RoleUser, Message: "What are the zoning rules?"},
			&core.ChatTurn{Role: core.RoleAI, Message: "Based on recent zoning ordinances..."},
		)
		require.NoError(t, err)
		require.Len(t, turns, 2)

		assert.NotEqual(t, core.ID(0), turns[0].Id)
		assert.NotEqual(t, core.ID(0), turns[1].Id)
		assert.Greater(t, uint64(turns[1].Id), uint64(turns[0].Id))
		assert.False(t, turns[0].InsertedAt.IsZero())
		assert.False(t, turns[0].Timestamp.IsZero())
	})

	t.Run("preserves explicit timestamp", func(t *testing.T) {
		ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		turns, err := repo.AppendTurns(ctx, &core.ChatTurn{Role: core.RoleUser, Message: "hi", Timestamp: ts})
		require.NoError(t, err)
		assert.Equal(t, ts, turns[0].Timestamp)
	})
}

func TestRecentTurns(t *testing.T) {
	repo := setupChatRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		role := core.RoleUser
		if i%2 == 1 {
			role = core.RoleAI
		}
		_, err := repo.AppendTurns(ctx, &core.ChatTurn{Role: role, Message: fmt.Sprintf("message %d", i)})
		require.NoError(t, err)
	}

	t.Run("window is oldest first", func(t *testing.T) {
		turns, err := repo.RecentTurns(ctx, 3)
		require.NoError(t, err)
		require.Len(t, turns, 3)

		assert.Equal(t, "message 2", turns[0].Message)
		assert.Equal(t, "message 3", turns[1].Message)
		assert.Equal(t, "message 4", turns[2].Message)
	})

	t.Run("zero limit returns whole history", func(t *testing.T) {
		turns, err := repo.RecentTurns(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, turns, 5)
		assert.Equal(t, "message 0", turns[0].Message)
	})

	t.Run("limit beyond history", func(t *testing.T) {
		turns, err := repo.RecentTurns(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, turns, 5)
	})
}

func TestRecentTurns_Empty(t *testing.T) {
	repo := setupChatRepo(t)

	turns, err := repo.RecentTurns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestCountTurns(t *testing.T) {
	repo := setupChatRepo(t)
	ctx := context.Background()

	count, err := repo.CountTurns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = repo.AppendTurns(ctx,
		&core.ChatTurn{Role: core.RoleUser, Message: "a"},
		&core.ChatTurn{Role: core.RoleAI, Message: "b"},
	)
	require.NoError(t, err)

	count, err = repo.CountTurns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClearTurns(t *testing.T) {
	repo := setupChatRepo(t)
	ctx := context.Background()

	_, err := repo.AppendTurns(ctx,
		&core.ChatTurn{Role: core.RoleUser, Message: "a"},
		&core.ChatTurn{Role: core.RoleAI, Message: "b"},
		&core.ChatTurn{Role: core.RoleUser, Message: "c"},
	)
	require.NoError(t, err)

	removed, err := repo.ClearTurns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	count, err := repo.CountTurns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Clearing an empty history is not an error
	removed, err = repo.ClearTurns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestAppendAfterClear(t *testing.T) {
	repo := setupChatRepo(t)
	ctx := context.Background()

	_, err := repo.AppendTurns(ctx, &core.ChatTurn{Role: core.RoleUser, Message: "before"})
	require.NoError(t, err)

	_, err = repo.ClearTurns(ctx)
	require.NoError(t, err)

	turns, err := repo.AppendTurns(ctx, &core.ChatTurn{Role: core.RoleUser, Message: "after"})
	require.NoError(t, err)

	recent, err := repo.RecentTurns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "after", recent[0].Message)
	assert.Equal(t, turns[0].Id, recent[0].Id)
}
