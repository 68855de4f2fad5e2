package services

import (
	"errors"

	"game-catalog/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// GameStoreKey is the Locals key the router injects the shared store under.
const GameStoreKey = "game_store"

type GameService struct {
	Log *logrus.Logger
}

func NewGameService(logger *logrus.Logger) *GameService {
	return &GameService{Log: logger}
}

// GameStoreFrom returns the store injected for the current route.
func GameStoreFrom(c *fiber.Ctx) (*GameStore, error) {
	store, ok := c.Locals(GameStoreKey).(*GameStore)
	if !ok || store == nil {
		return nil, errors.New("game store not injected into route")
	}
	return store, nil
}

// ListGames handles `GET /games?offset=3&limit=5`.
func (s *GameService) ListGames(c *fiber.Ctx) error {
	store, err := GameStoreFrom(c)
	if err != nil {
		return err
	}
	opts := middleware.ListOptionsFrom(c)
	s.Log.WithFields(logrus.Fields{"offset": c.Query("offset"), "limit": c.Query("limit")}).Debug("list all games")

	games := store.List(opts)
	for _, g := range games {
		// a corrupted record must not be sent as if it were valid
		if err := g.Validate(); err != nil {
			s.Log.WithError(err).WithField("id", g.ID).Error("stored game failed validation")
			return fiber.NewError(fiber.StatusInternalServerError, "stored game is invalid")
		}
	}
	return c.JSON(games)
}

// CreateGame handles `POST /games`.
func (s *GameService) CreateGame(c *fiber.Ctx) error {
	store, err := GameStoreFrom(c)
	if err != nil {
		return err
	}
	game := middleware.GameFrom(c)
	s.Log.WithField("game", game).Debug("create new game")

	if err := store.Create(game); err != nil {
		if errors.Is(err, ErrGameExists) {
			s.Log.WithField("id", game.ID).Debug("game of given id already exists")
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.Status(fiber.StatusCreated).Send(nil)
}

// UpdateGame handles `PUT /games/:id`. The path id only selects the game;
// the body replaces it whole, id included.
func (s *GameService) UpdateGame(c *fiber.Ctx) error {
	store, err := GameStoreFrom(c)
	if err != nil {
		return err
	}
	id := middleware.GameIDFrom(c)
	game := middleware.GameFrom(c)
	s.Log.WithFields(logrus.Fields{"id": id, "game": game}).Debug("update existing game")

	if err := store.Update(id, game); err != nil {
		if errors.Is(err, ErrGameNotFound) {
			s.Log.WithField("id", id).Debug("game of given id not found")
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

// DeleteGame handles `DELETE /games/:id`.
func (s *GameService) DeleteGame(c *fiber.Ctx) error {
	store, err := GameStoreFrom(c)
	if err != nil {
		return err
	}
	id := middleware.GameIDFrom(c)
	s.Log.WithField("id", id).Debug("delete game")

	removed, err := store.Delete(id)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			s.Log.WithField("id", id).Debug("game of given id not found")
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	if removed > 1 {
		s.Log.WithFields(logrus.Fields{"id": id, "removed": removed}).Warn("deleted duplicate games")
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
