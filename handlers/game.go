// handlers/game.go
package handlers

import (
	"game-catalog/middleware"
	"game-catalog/services"

	"github.com/gofiber/fiber/v2"
)

// SetupGameRoutes mounts the games API:
//
//	GET    /games       list games, ?offset= and ?limit= optional
//	POST   /games       create a game
//	PUT    /games/:id   replace a game
//	DELETE /games/:id   delete a game
//
// Other methods on these paths answer 405 and unknown paths 404, both
// produced by fiber's router.
func SetupGameRoutes(app *fiber.App, gameService *services.GameService, store *services.GameStore) {
	withStore := middleware.WithLocal(services.GameStoreKey, store)
	gameBody := middleware.JSONGameBody(middleware.MaxJSONBody)

	app.Get("/games", middleware.ListOptions(), withStore, gameService.ListGames)
	app.Post("/games", gameBody, withStore, gameService.CreateGame)
	app.Put("/games/:id", middleware.GameID(), gameBody, withStore, gameService.UpdateGame)
	app.Delete("/games/:id", middleware.GameID(), withStore, gameService.DeleteGame)
}
