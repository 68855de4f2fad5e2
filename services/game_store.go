// services/game_store.go
package services

import (
	"errors"
	"sync"

	"game-catalog/models"
)

var (
	ErrGameExists   = errors.New("game of given id already exists")
	ErrGameNotFound = errors.New("game of given id not found")
)

// GameStore is the shared in-memory catalog. Insertion order is the order
// games are listed in. Every read and write holds mu; there is no
// read/write distinction.
type GameStore struct {
	mu    sync.Mutex
	games []models.Game
}

func NewGameStore(games []models.Game) *GameStore {
	return &GameStore{games: append([]models.Game(nil), games...)}
}

// NewExampleGameStore returns a store seeded with the demo catalog.
func NewExampleGameStore() *GameStore {
	return NewGameStore(ExampleGames())
}

func ExampleGames() []models.Game {
	return []models.Game{
		{
			ID:          1,
			Title:       "Dark Souls",
			Rating:      91,
			Genre:       models.GenreRolePlaying,
			Description: models.StringPtr("Takes place in the fictional kingdom of Lordran, where players assume the role of a cursed undead character who begins a pilgrimage to discover the fate of their kind."),
			ReleaseDate: models.NewReleaseDate(2011, 9, 22),
		},
		{
			ID:          2,
			Title:       "Dark Souls 2",
			Rating:      87,
			Genre:       models.GenreRolePlaying,
			ReleaseDate: models.NewReleaseDate(2014, 3, 11),
		},
		{
			ID:          3,
			Title:       "Dark Souls 3",
			Rating:      89,
			Genre:       models.GenreRolePlaying,
			Description: models.StringPtr("The latest chapter in the series with its trademark sword and sorcery combat and rewarding action RPG gameplay."),
			ReleaseDate: models.NewReleaseDate(2016, 3, 24),
		},
	}
}

// List returns a copy of the page selected by opts, in store order.
func (s *GameStore) List(opts models.ListOptions) []models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, end := opts.Window(len(s.games))
	page := make([]models.Game, end-start)
	copy(page, s.games[start:end])
	return page
}

// Create appends game unless its id is already taken.
func (s *GameStore) Create(game models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(game.ID) >= 0 {
		return ErrGameExists
	}
	s.games = append(s.games, game)
	return nil
}

// Update replaces the game stored under id with game, including its id.
func (s *GameStore) Update(id uint64, game models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrGameNotFound
	}
	s.games[i] = game
	return nil
}

// Delete removes every game with the given id and reports how many went.
func (s *GameStore) Delete(id uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.games[:0]
	for _, g := range s.games {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	removed := len(s.games) - len(kept)
	clear(s.games[len(kept):])
	s.games = kept

	if removed == 0 {
		return 0, ErrGameNotFound
	}
	return removed, nil
}

func (s *GameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Snapshot copies the whole catalog.
func (s *GameStore) Snapshot() []models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Game, len(s.games))
	copy(out, s.games)
	return out
}

// indexOf must be called with mu held.
func (s *GameStore) indexOf(id uint64) int {
	for i, g := range s.games {
		if g.ID == id {
			return i
		}
	}
	return -1
}
