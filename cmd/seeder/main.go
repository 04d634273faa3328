package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"swish-api/internal/config"
	"swish-api/internal/models"
	"swish-api/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var modes = []string{
	models.ModeClassic,
	models.ModeTimeAttack,
	models.ModeStreak,
	models.ModeDistance,
}

var difficulties = []string{
	models.DifficultyEasy,
	models.DifficultyMedium,
	models.DifficultyHard,
}

var madeShotTypes = []string{
	models.ShotTypeSwish,
	models.ShotTypeRimIn,
	models.ShotTypeBackboard,
}

func main() {
	userCount := flag.Int("users", 50, "number of demo users to create")
	gamesPerUser := flag.Int("games", 5, "completed games per user")
	shotsPerGame := flag.Int("shots", 10, "shots per game")
	batchSize := flag.Int("batch", 500, "insert batch size")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	repo := repository.New(db)
	if err := repo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	start := time.Now()

	users := buildUsers(*userCount)
	if err := repo.BulkInsertUsers(ctx, users, *batchSize); err != nil {
		log.Fatalf("Failed to insert users: %v", err)
	}
	log.Printf("Inserted %d users", len(users))

	var games []models.Game
	for i := range users {
		games = append(games, buildGames(&users[i], *gamesPerUser, *shotsPerGame)...)
	}
	if err := repo.BulkInsertGames(ctx, games, *batchSize); err != nil {
		log.Fatalf("Failed to insert games: %v", err)
	}
	log.Printf("Inserted %d games", len(games))

	// User aggregates are derived from their generated games, so totals and
	// leaderboards line up with what the API would have produced.
	for i := range users {
		user := &users[i]
		err := db.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"total_games": user.TotalGames,
				"total_shots": user.TotalShots,
				"total_makes": user.TotalMakes,
				"best_streak": user.BestStreak,
				"total_score": user.TotalScore,
			}).Error
		if err != nil {
			log.Fatalf("Failed to update stats for user %d: %v", user.ID, err)
		}
	}

	var shots []models.Shot
	for i := range games {
		shots = append(shots, buildShots(&games[i])...)
	}
	if err := repo.BulkInsertShots(ctx, shots, *batchSize); err != nil {
		log.Fatalf("Failed to insert shots: %v", err)
	}
	log.Printf("Inserted %d shots", len(shots))

	log.Printf("Seeding complete in %v", time.Since(start).Round(time.Millisecond))
}

// buildUsers generates demo users with zeroed stats
func buildUsers(count int) []models.User {
	users := make([]models.User, 0, count)
	for i := 1; i <= count; i++ {
		users = append(users, models.User{
			Username: fmt.Sprintf("swish_player_%04d", i),
		})
	}
	return users
}

// buildGames generates completed games for a user and folds their results
// into the user's aggregate stats
func buildGames(user *models.User, count, shotsPerGame int) []models.Game {
	games := make([]models.Game, 0, count)
	for i := 0; i < count; i++ {
		made := rand.IntN(shotsPerGame + 1)
		maxStreak := 0
		if made > 0 {
			maxStreak = 1 + rand.IntN(made)
		}
		score := made*100 + maxStreak*50

		games = append(games, models.Game{
			UserID:     user.ID,
			GameMode:   modes[rand.IntN(len(modes))],
			Difficulty: difficulties[rand.IntN(len(difficulties))],
			Score:      score,
			ShotsTaken: shotsPerGame,
			ShotsMade:  made,
			MaxStreak:  maxStreak,
			Completed:  true,
		})

		user.TotalGames++
		user.TotalShots += shotsPerGame
		user.TotalMakes += made
		user.TotalScore += score
		if maxStreak > user.BestStreak {
			user.BestStreak = maxStreak
		}
	}
	return games
}

// buildShots generates shots consistent with a game's made/taken counters
func buildShots(game *models.Game) []models.Shot {
	shots := make([]models.Shot, 0, game.ShotsTaken)
	for n := 1; n <= game.ShotsTaken; n++ {
		made := n <= game.ShotsMade
		shotType := models.ShotTypeMiss
		if made {
			shotType = madeShotTypes[rand.IntN(len(madeShotTypes))]
		}
		st := shotType

		shots = append(shots, models.Shot{
			UserID:     game.UserID,
			GameID:     game.ID,
			Angle:      40 + rand.Float64()*20,
			Power:      0.4 + rand.Float64()*0.5,
			ReleaseX:   rand.Float64() * 100,
			ReleaseY:   rand.Float64() * 100,
			Made:       made,
			ShotType:   &st,
			ShotNumber: n,
		})
	}
	return shots
}
