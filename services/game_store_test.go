package services

import (
	"sync"
	"testing"
	"time"

	"game-catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockedGames() []models.Game {
	return []models.Game{
		{
			ID:          1,
			Title:       "Crappy title",
			Rating:      35,
			Genre:       models.GenreRolePlaying,
			Description: models.StringPtr("Test description..."),
			ReleaseDate: models.NewReleaseDate(2011, time.September, 22),
		},
		{
			ID:          2,
			Title:       "Decent game",
			Rating:      84,
			Genre:       models.GenreStrategy,
			ReleaseDate: models.NewReleaseDate(2014, time.March, 11),
		},
	}
}

func mockedGame() models.Game {
	return models.Game{
		ID:          3,
		Title:       "Another game",
		Rating:      65,
		Genre:       models.GenreStrategy,
		ReleaseDate: models.NewReleaseDate(2016, time.March, 11),
	}
}

func intPtr(n int) *int { return &n }

func TestGameStore_List(t *testing.T) {
	store := NewGameStore(mockedGames())

	all := store.List(models.ListOptions{})
	assert.Equal(t, mockedGames(), all)

	page := store.List(models.ListOptions{Offset: intPtr(1), Limit: intPtr(5)})
	require.Len(t, page, 1)
	assert.Equal(t, uint64(2), page[0].ID)

	empty := store.List(models.ListOptions{Offset: intPtr(5), Limit: intPtr(5)})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGameStore_ListReturnsCopy(t *testing.T) {
	store := NewGameStore(mockedGames())

	page := store.List(models.ListOptions{})
	page[0].Title = "changed"

	assert.Equal(t, "Crappy title", store.List(models.ListOptions{})[0].Title)
}

func TestGameStore_Create(t *testing.T) {
	store := NewGameStore(mockedGames())

	require.NoError(t, store.Create(mockedGame()))
	games := store.Snapshot()
	require.Len(t, games, 3)
	assert.Equal(t, mockedGame(), games[2])

	dup := mockedGame()
	dup.Title = "duplicate"
	assert.ErrorIs(t, store.Create(dup), ErrGameExists)
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, "Another game", store.Snapshot()[2].Title)
}

func TestGameStore_Update(t *testing.T) {
	store := NewGameStore(mockedGames())

	require.NoError(t, store.Update(2, mockedGame()))
	games := store.Snapshot()
	assert.Equal(t, mockedGame(), games[1])
	assert.Equal(t, uint64(3), games[1].ID)

	before := store.Snapshot()
	assert.ErrorIs(t, store.Update(42, mockedGame()), ErrGameNotFound)
	assert.Equal(t, before, store.Snapshot())
}

func TestGameStore_Delete(t *testing.T) {
	store := NewGameStore(mockedGames())

	removed, err := store.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, uint64(2), store.Snapshot()[0].ID)

	removed, err = store.Delete(42)
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.Zero(t, removed)
	assert.Equal(t, 1, store.Len())
}

func TestGameStore_DeleteRemovesEveryMatch(t *testing.T) {
	store := NewGameStore(mockedGames())
	// an update may move a game onto an id that is already used
	require.NoError(t, store.Update(2, mockedGames()[0]))

	removed, err := store.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Zero(t, store.Len())
}

func TestGameStore_Concurrent(t *testing.T) {
	store := NewGameStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			game := mockedGame()
			game.ID = id
			assert.NoError(t, store.Create(game))
			_ = store.List(models.ListOptions{})
		}(uint64(i))
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}

func TestNewExampleGameStore(t *testing.T) {
	games := NewExampleGameStore().Snapshot()
	require.Len(t, games, 3)

	assert.Equal(t, "Dark Souls", games[0].Title)
	assert.Nil(t, games[1].Description)
	for _, g := range games {
		assert.NoError(t, g.Validate())
		assert.Equal(t, models.GenreRolePlaying, g.Genre)
	}
}
