package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/derekprior/clubsched/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame(id, league string, week int, home, away string) store.Game {
	return store.Game{ID: id, LeagueID: league, Week: week, Field: 1, Home: home, Away: away, Time: "6:00 PM"}
}

func TestGameRepositoryListByLeague(t *testing.T) {
	repo := NewGameRepository([]store.Game{
		testGame("g2", "winter", 2, "A", "B"),
		testGame("g1", "winter", 1, "C", "D"),
		testGame("s1", "spring", 1, "E", "F"),
	})

	games, err := repo.ListByLeague(context.Background(), "winter")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "g1", games[0].ID)
	assert.Equal(t, "g2", games[1].ID)

	games, err = repo.ListByLeague(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestGameRepositoryReplaceLeagueGames(t *testing.T) {
	ctx := context.Background()
	repo := NewGameRepository([]store.Game{
		testGame("old", "winter", 1, "A", "B"),
		testGame("other", "spring", 1, "E", "F"),
	})

	err := repo.ReplaceLeagueGames(ctx, "winter", []store.Game{
		testGame("new1", "winter", 1, "A", "C"),
		testGame("new2", "winter", 2, "B", "D"),
	})
	require.NoError(t, err)

	games, err := repo.ListByLeague(ctx, "winter")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "new1", games[0].ID)

	spring, err := repo.ListByLeague(ctx, "spring")
	require.NoError(t, err)
	assert.Len(t, spring, 1, "other leagues are untouched")

	t.Run("invalid batch leaves games in place", func(t *testing.T) {
		err := repo.ReplaceLeagueGames(ctx, "winter", []store.Game{
			testGame("bad", "winter", 0, "A", "B"),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrInvalidGame))

		games, err := repo.ListByLeague(ctx, "winter")
		require.NoError(t, err)
		assert.Len(t, games, 2)
	})

	t.Run("rejects games from another league", func(t *testing.T) {
		err := repo.ReplaceLeagueGames(ctx, "winter", []store.Game{
			testGame("x", "spring", 1, "A", "B"),
		})
		assert.True(t, errors.Is(err, store.ErrInvalidGame))
	})
}

func TestGameRepositoryCreateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewGameRepository(nil)

	require.NoError(t, repo.CreateGames(ctx, []store.Game{
		testGame("g1", "winter", 1, "A", "B"),
		testGame("s1", "spring", 1, "C", "D"),
	}))
	require.NoError(t, repo.DeleteByLeague(ctx, "winter"))

	winter, err := repo.ListByLeague(ctx, "winter")
	require.NoError(t, err)
	assert.Empty(t, winter)

	spring, err := repo.ListByLeague(ctx, "spring")
	require.NoError(t, err)
	assert.Len(t, spring, 1)

	err = repo.CreateGames(ctx, []store.Game{testGame("", "winter", 1, "A", "B")})
	assert.True(t, errors.Is(err, store.ErrInvalidGame))
}

func TestGameRepositoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewGameRepository(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = repo.CreateGames(ctx, []store.Game{testGame(fmt.Sprintf("g%d", i), "winter", 1, "A", "B")})
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.ListByLeague(ctx, "winter")
		}()
	}
	wg.Wait()

	games, err := repo.ListByLeague(ctx, "winter")
	require.NoError(t, err)
	assert.Len(t, games, 8)
}

func TestGameRepositoryRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("within a replace batch", func(t *testing.T) {
		repo := NewGameRepository([]store.Game{testGame("old", "winter", 1, "A", "B")})
		dup := testGame("dup", "winter", 2, "C", "D")

		err := repo.ReplaceLeagueGames(ctx, "winter", []store.Game{dup, dup})
		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrInvalidGame))

		games, err := repo.ListByLeague(ctx, "winter")
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, "old", games[0].ID, "failed replace must not lose existing games")
	})

	t.Run("replace may reuse the league's own ids", func(t *testing.T) {
		repo := NewGameRepository([]store.Game{testGame("g1", "winter", 1, "A", "B")})
		require.NoError(t, repo.ReplaceLeagueGames(ctx, "winter", []store.Game{testGame("g1", "winter", 2, "A", "C")}))
	})

	t.Run("ids are unique across leagues", func(t *testing.T) {
		repo := NewGameRepository([]store.Game{testGame("shared", "spring", 1, "E", "F")})

		err := repo.ReplaceLeagueGames(ctx, "winter", []store.Game{testGame("shared", "winter", 1, "A", "B")})
		assert.True(t, errors.Is(err, store.ErrInvalidGame))

		err = repo.CreateGames(ctx, []store.Game{testGame("shared", "winter", 1, "A", "B")})
		assert.True(t, errors.Is(err, store.ErrInvalidGame))

		winter, err := repo.ListByLeague(ctx, "winter")
		require.NoError(t, err)
		assert.Empty(t, winter)
	})
}
