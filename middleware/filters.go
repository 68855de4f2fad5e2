// middleware/filters.go
package middleware

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"game-catalog/models"

	"github.com/gofiber/fiber/v2"
)

// MaxJSONBody caps the declared size of game payloads.
const MaxJSONBody = 32 * 1024

const (
	listOptionsKey = "list_options"
	gameBodyKey    = "game_body"
	gameIDKey      = "game_id"
)

// WithLocal hands value to every later stage of the route under key.
func WithLocal(key string, value any) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(key, value)
		return c.Next()
	}
}

// ListOptions parses ?offset= and ?limit=. Missing or unparsable values
// fall back to "no offset" and "no limit"; they never fail the request.
func ListOptions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(listOptionsKey, models.ListOptions{
			Offset: queryCount(c, "offset"),
			Limit:  queryCount(c, "limit"),
		})
		return c.Next()
	}
}

func queryCount(c *fiber.Ctx, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	v := math.MaxInt
	if n < uint64(math.MaxInt) {
		v = int(n)
	}
	return &v
}

func ListOptionsFrom(c *fiber.Ctx) models.ListOptions {
	opts, _ := c.Locals(listOptionsKey).(models.ListOptions)
	return opts
}

// JSONGameBody rejects bodies declared larger than limit with 413 and
// bodies explicitly typed as something other than JSON with 415, then
// decodes and validates a game. Malformed or invalid games get 400.
// A request without Content-Type is decoded as JSON.
func JSONGameBody(limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Request().Header.ContentLength() > limit {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge,
				fmt.Sprintf("payload too large, limit is %d bytes", limit))
		}
		// bodies without a declared length are still held to the cap
		body := c.Body()
		if len(body) > limit {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge,
				fmt.Sprintf("payload too large, limit is %d bytes", limit))
		}
		if c.Get(fiber.HeaderContentType) != "" && !c.Is("json") {
			return fiber.NewError(fiber.StatusUnsupportedMediaType, "game payload must be application/json")
		}

		game, err := DecodeGame(body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		c.Locals(gameBodyKey, game)
		return c.Next()
	}
}

// DecodeGame parses a JSON game and runs its validation.
func DecodeGame(body []byte) (models.Game, error) {
	var game models.Game
	if err := json.Unmarshal(body, &game); err != nil {
		return models.Game{}, fmt.Errorf("malformed game payload: %w", err)
	}
	if err := game.Validate(); err != nil {
		return models.Game{}, err
	}
	return game, nil
}

func GameFrom(c *fiber.Ctx) models.Game {
	game, _ := c.Locals(gameBodyKey).(models.Game)
	return game
}

// GameID parses the :id path segment. Anything that is not an unsigned
// integer cannot name a game, so it answers 404.
func GameID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "game not found")
		}
		c.Locals(gameIDKey, id)
		return c.Next()
	}
}

func GameIDFrom(c *fiber.Ctx) uint64 {
	id, _ := c.Locals(gameIDKey).(uint64)
	return id
}
