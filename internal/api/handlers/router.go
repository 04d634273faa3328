package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Register mounts every API route on the app. Static segments are
// registered ahead of the parameterized routes that could shadow them.
func Register(app *fiber.App, users *UserHandler, games *GameHandler, shots *ShotHandler, leaderboard *LeaderboardHandler, health *HealthHandler) {
	app.Get("/", health.Banner)
	app.Get("/health", health.Health)

	u := app.Group("/users")
	u.Post("/", users.CreateUser)
	u.Get("/username/:username", users.GetUserByUsername)
	u.Get("/:id", users.GetUser)
	u.Get("/:id/stats", users.GetUserStats)

	g := app.Group("/games")
	g.Post("/", games.CreateGame)
	g.Get("/user/:user_id", games.GetUserGames)
	g.Get("/:id", games.GetGame)
	g.Patch("/:id", games.UpdateGame)
	g.Delete("/:id", games.DeleteGame)

	s := app.Group("/shots")
	s.Post("/", shots.CreateShot)
	s.Get("/game/:game_id", shots.GetGameShots)
	s.Get("/user/:user_id/chart", shots.GetShotChart)
	s.Get("/:id", shots.GetShot)

	l := app.Group("/leaderboard")
	l.Get("/global/top-players", leaderboard.GetTopPlayers)
	l.Get("/:game_mode", leaderboard.GetLeaderboard)
}
