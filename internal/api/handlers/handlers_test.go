package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"swish-api/internal/models"
	"swish-api/internal/repository"
	"swish-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type HandlersSuite struct {
	suite.Suite
	app *fiber.App
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}

func (s *HandlersSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(db.Exec("PRAGMA foreign_keys = ON").Error)

	repo := repository.New(db)
	s.Require().NoError(repo.AutoMigrate())

	userService := service.NewUserService(repo)
	gameService := service.NewGameService(repo, nil)
	shotService := service.NewShotService(repo)
	leaderboardService := service.NewLeaderboardService(repo)

	s.app = fiber.New()
	Register(s.app,
		NewUserHandler(userService),
		NewGameHandler(gameService),
		NewShotHandler(shotService),
		NewLeaderboardHandler(leaderboardService),
		NewHealthHandler(repo, nil),
	)
}

func (s *HandlersSuite) request(method, path string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *HandlersSuite) decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

func (s *HandlersSuite) createUser(username string) models.UserResponse {
	resp := s.request(fiber.MethodPost, "/users/", fiber.Map{"username": username})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var user models.UserResponse
	s.decode(resp, &user)
	return user
}

func (s *HandlersSuite) createGame(userID uint, mode, difficulty string) models.GameResponse {
	body := fiber.Map{"game_mode": mode}
	if difficulty != "" {
		body["difficulty"] = difficulty
	}
	resp := s.request(fiber.MethodPost, fmt.Sprintf("/games/?user_id=%d", userID), body)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var game models.GameResponse
	s.decode(resp, &game)
	return game
}

func (s *HandlersSuite) recordShot(gameID uint, number int, made bool) models.ShotResponse {
	resp := s.request(fiber.MethodPost, "/shots/", fiber.Map{
		"game_id":     gameID,
		"angle":       45.0,
		"power":       0.8,
		"release_x":   10.0,
		"release_y":   90.0,
		"made":        made,
		"shot_number": number,
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var shot models.ShotResponse
	s.decode(resp, &shot)
	return shot
}

func (s *HandlersSuite) completeGame(gameID uint, score, taken, made, maxStreak int) {
	resp := s.request(fiber.MethodPatch, fmt.Sprintf("/games/%d", gameID), fiber.Map{
		"score":       score,
		"shots_taken": taken,
		"shots_made":  made,
		"max_streak":  maxStreak,
		"completed":   true,
	})
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *HandlersSuite) TestBannerAndHealth() {
	resp := s.request(fiber.MethodGet, "/", nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var banner map[string]any
	s.decode(resp, &banner)
	s.Equal("Welcome to Swish API", banner["message"])

	resp = s.request(fiber.MethodGet, "/health", nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var health map[string]any
	s.decode(resp, &health)
	s.Equal("healthy", health["status"])
}

func (s *HandlersSuite) TestCreateUser() {
	user := s.createUser("ace")
	s.NotZero(user.ID)
	s.Equal("ace", user.Username)
	s.Equal(0.0, user.Accuracy)
}

func (s *HandlersSuite) TestCreateUserDuplicate() {
	s.createUser("ace")

	resp := s.request(fiber.MethodPost, "/users/", fiber.Map{"username": "ace"})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	s.decode(resp, &body)
	s.Equal("Conflict", body.Error)
}

func (s *HandlersSuite) TestCreateUserValidation() {
	resp := s.request(fiber.MethodPost, "/users/", fiber.Map{"email": "no-username@example.com"})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *HandlersSuite) TestGetUserRoutes() {
	created := s.createUser("ace")

	resp := s.request(fiber.MethodGet, fmt.Sprintf("/users/%d", created.ID), nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.request(fiber.MethodGet, "/users/username/ace", nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.request(fiber.MethodGet, "/users/9999", nil)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = s.request(fiber.MethodGet, "/users/username/nobody", nil)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *HandlersSuite) TestCreateGame() {
	user := s.createUser("ace")
	game := s.createGame(user.ID, models.ModeClassic, models.DifficultyEasy)

	s.Equal(user.ID, game.UserID)
	s.Equal(0, game.Score)
	s.False(game.Completed)
	s.Equal(models.DifficultyEasy, game.Difficulty)
}

func (s *HandlersSuite) TestCreateGameUnknownUser() {
	resp := s.request(fiber.MethodPost, "/games/?user_id=9999", fiber.Map{"game_mode": "classic"})
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *HandlersSuite) TestCreateGameInvalidMode() {
	user := s.createUser("ace")
	resp := s.request(fiber.MethodPost, fmt.Sprintf("/games/?user_id=%d", user.ID),
		fiber.Map{"game_mode": "dunk_contest"})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *HandlersSuite) TestCompletionRollupIsIdempotent() {
	user := s.createUser("ace")
	game := s.createGame(user.ID, models.ModeClassic, "")

	s.completeGame(game.ID, 800, 10, 7, 5)
	// Repeat the completed patch; stats must not double.
	s.completeGame(game.ID, 800, 10, 7, 5)

	resp := s.request(fiber.MethodGet, fmt.Sprintf("/users/%d/stats", user.ID), nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var stats models.UserStats
	s.decode(resp, &stats)
	s.Equal(1, stats.TotalGames)
	s.Equal(10, stats.TotalShots)
	s.Equal(7, stats.TotalMakes)
	s.Equal(800, stats.TotalScore)
	s.Equal(5, stats.BestStreak)
	s.Equal(70.0, stats.Accuracy)
}

func (s *HandlersSuite) TestGetGameIncludesShots() {
	user := s.createUser("ace")
	game := s.createGame(user.ID, models.ModeClassic, "")
	s.recordShot(game.ID, 2, false)
	s.recordShot(game.ID, 1, true)

	resp := s.request(fiber.MethodGet, fmt.Sprintf("/games/%d", game.ID), nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var body models.GameWithShots
	s.decode(resp, &body)
	s.Require().Len(body.Shots, 2)
	s.Equal(1, body.Shots[0].ShotNumber)
	s.Equal(2, body.Shots[1].ShotNumber)
}

func (s *HandlersSuite) TestListUserGames() {
	user := s.createUser("ace")
	s.createGame(user.ID, models.ModeClassic, "")
	s.createGame(user.ID, models.ModeStreak, "")

	resp := s.request(fiber.MethodGet, fmt.Sprintf("/games/user/%d", user.ID), nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var games []models.GameResponse
	s.decode(resp, &games)
	s.Len(games, 2)

	resp = s.request(fiber.MethodGet, fmt.Sprintf("/games/user/%d?game_mode=streak", user.ID), nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.decode(resp, &games)
	s.Len(games, 1)
}

func (s *HandlersSuite) TestDeleteGame() {
	user := s.createUser("ace")
	game := s.createGame(user.ID, models.ModeClassic, "")
	shot := s.recordShot(game.ID, 1, true)
	s.completeGame(game.ID, 100, 1, 1, 1)

	resp := s.request(fiber.MethodDelete, fmt.Sprintf("/games/%d", game.ID), nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	s.decode(resp, &body)
	s.Equal("Game deleted successfully", body["message"])

	resp = s.request(fiber.MethodGet, fmt.Sprintf("/games/%d", game.ID), nil)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = s.request(fiber.MethodGet, fmt.Sprintf("/shots/%d", shot.ID), nil)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	// User stats survive the deletion.
	resp = s.request(fiber.MethodGet, fmt.Sprintf("/users/%d/stats", user.ID), nil)
	var stats models.UserStats
	s.decode(resp, &stats)
	s.Equal(1, stats.TotalGames)
	s.Equal(100, stats.TotalScore)
}

func (s *HandlersSuite) TestCreateShotUnknownGame() {
	resp := s.request(fiber.MethodPost, "/shots/", fiber.Map{
		"game_id":     9999,
		"made":        true,
		"shot_number": 1,
	})
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *HandlersSuite) TestGetShotWithTrajectory() {
	user := s.createUser("ace")
	game := s.createGame(user.ID, models.ModeClassic, "")

	resp := s.request(fiber.MethodPost, "/shots/", fiber.Map{
		"game_id":     game.ID,
		"angle":       50.0,
		"power":       0.9,
		"made":        true,
		"shot_number": 1,
		"trajectory":  []fiber.Map{{"x": 0, "y": 0, "t": 0}, {"x": 1, "y": 2, "t": 0.1}},
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created models.ShotResponse
	s.decode(resp, &created)

	resp = s.request(fiber.MethodGet, fmt.Sprintf("/shots/%d", created.ID), nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var shot models.ShotWithTrajectory
	s.decode(resp, &shot)
	s.JSONEq(`[{"x":0,"y":0,"t":0},{"x":1,"y":2,"t":0.1}]`, string(shot.Trajectory))
}

func (s *HandlersSuite) TestShotList() {
	user := s.createUser("ace")
	game := s.createGame(user.ID, models.ModeClassic, "")
	s.recordShot(game.ID, 2, true)
	s.recordShot(game.ID, 1, false)

	resp := s.request(fiber.MethodGet, fmt.Sprintf("/shots/game/%d", game.ID), nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var shots []models.ShotResponse
	s.decode(resp, &shots)
	s.Require().Len(shots, 2)
	s.Equal(1, shots[0].ShotNumber)

	resp = s.request(fiber.MethodGet, "/shots/game/9999", nil)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *HandlersSuite) TestShotChart() {
	user := s.createUser("ace")
	game := s.createGame(user.ID, models.ModeClassic, "")
	for i := 1; i <= 3; i++ {
		s.recordShot(game.ID, i, true)
	}
	for i := 4; i <= 5; i++ {
		s.recordShot(game.ID, i, false)
	}

	resp := s.request(fiber.MethodGet, fmt.Sprintf("/shots/user/%d/chart", user.ID), nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var chart models.ShotChart
	s.decode(resp, &chart)
	s.Equal(5, chart.TotalShots)
	s.Equal(3, chart.Made)
	s.Equal(2, chart.Missed)
	s.Len(chart.ByPosition, 5)
}

func (s *HandlersSuite) TestLeaderboard() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	g1 := s.createGame(alice.ID, models.ModeClassic, models.DifficultyMedium)
	s.completeGame(g1.ID, 500, 10, 5, 3)
	g2 := s.createGame(bob.ID, models.ModeClassic, models.DifficultyMedium)
	s.completeGame(g2.ID, 900, 10, 9, 6)
	// Different difficulty stays off this board.
	g3 := s.createGame(bob.ID, models.ModeClassic, models.DifficultyHard)
	s.completeGame(g3.ID, 9999, 10, 10, 10)

	resp := s.request(fiber.MethodGet, "/leaderboard/classic", nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var board models.LeaderboardResponse
	s.decode(resp, &board)
	s.Equal(models.DifficultyMedium, board.Difficulty)
	s.Require().Len(board.Entries, 2)
	s.Equal(1, board.Entries[0].Rank)
	s.Equal("bob", board.Entries[0].Username)
	s.Equal(2, board.Entries[1].Rank)
	s.Equal("alice", board.Entries[1].Username)
}

func (s *HandlersSuite) TestTopPlayers() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	g1 := s.createGame(alice.ID, models.ModeClassic, "")
	s.completeGame(g1.ID, 300, 5, 3, 2)
	g2 := s.createGame(bob.ID, models.ModeClassic, "")
	s.completeGame(g2.ID, 700, 5, 5, 5)

	resp := s.request(fiber.MethodGet, "/leaderboard/global/top-players", nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var players []models.TopPlayerEntry
	s.decode(resp, &players)
	s.Require().Len(players, 2)
	s.Equal(1, players[0].Rank)
	s.Equal("bob", players[0].Username)
	s.Equal(700, players[0].TotalScore)
}
