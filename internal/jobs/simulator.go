package jobs

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"swish-api/internal/models"
	"swish-api/internal/repository"
	"swish-api/internal/service"
)

// Simulator plays randomized complete games through the service layer.
// Intended for demos and load checks; disabled by default.
type Simulator struct {
	repo  *repository.Repository
	games *service.GameService
	shots *service.ShotService

	users   []models.User
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	gamesPlayed atomic.Int64
	errorCount  atomic.Int64
	startTime   time.Time

	tickInterval time.Duration
	shotsPerGame int
}

// SimulatorConfig holds configuration for the simulator
type SimulatorConfig struct {
	TickInterval time.Duration // one game per tick
	ShotsPerGame int
}

var simModes = []string{
	models.ModeClassic,
	models.ModeTimeAttack,
	models.ModeStreak,
	models.ModeDistance,
}

var simDifficulties = []string{
	models.DifficultyEasy,
	models.DifficultyMedium,
	models.DifficultyHard,
}

// NewSimulator creates a new simulator
func NewSimulator(repo *repository.Repository, games *service.GameService, shots *service.ShotService, config SimulatorConfig) *Simulator {
	if config.TickInterval == 0 {
		config.TickInterval = 2 * time.Second
	}
	if config.ShotsPerGame == 0 {
		config.ShotsPerGame = 10
	}

	return &Simulator{
		repo:         repo,
		games:        games,
		shots:        shots,
		stopCh:       make(chan struct{}),
		tickInterval: config.TickInterval,
		shotsPerGame: config.ShotsPerGame,
	}
}

// Start begins the simulation loop
func (s *Simulator) Start(ctx context.Context) error {
	if s.running.Load() {
		return fmt.Errorf("simulator already running")
	}

	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if len(users) == 0 {
		return fmt.Errorf("no users available for simulation; run the seeder first")
	}

	s.users = users
	s.startTime = time.Now()
	s.running.Store(true)

	log.Printf("simulator started: %d users, one game per %v, %d shots per game",
		len(s.users), s.tickInterval, s.shotsPerGame)

	s.wg.Add(1)
	go s.loop(ctx)

	return nil
}

// Stop gracefully stops the simulation
func (s *Simulator) Stop() {
	if !s.running.Load() {
		return
	}

	s.running.Store(false)
	close(s.stopCh)
	s.wg.Wait()

	elapsed := time.Since(s.startTime)
	log.Printf("simulator stopped: %d games played, %d errors, ran %v",
		s.gamesPlayed.Load(), s.errorCount.Load(), elapsed.Round(time.Second))
}

// IsRunning returns whether the simulation is currently running
func (s *Simulator) IsRunning() bool {
	return s.running.Load()
}

func (s *Simulator) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			user := s.users[rand.IntN(len(s.users))]
			if err := s.playGame(ctx, user.ID); err != nil {
				s.errorCount.Add(1)
				log.Printf("simulator: game for user %d failed: %v", user.ID, err)
				continue
			}
			s.gamesPlayed.Add(1)
		}
	}
}

// playGame runs one full session: create, record shots, complete
func (s *Simulator) playGame(ctx context.Context, userID uint) error {
	game, err := s.games.CreateGame(ctx, userID, &models.GameCreateRequest{
		GameMode:   simModes[rand.IntN(len(simModes))],
		Difficulty: simDifficulties[rand.IntN(len(simDifficulties))],
	})
	if err != nil {
		return err
	}

	score := 0
	made := 0
	streak := 0
	maxStreak := 0

	for i := 1; i <= s.shotsPerGame; i++ {
		hit := rand.IntN(100) < 60
		if hit {
			made++
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
			score += 100 + 50*min(streak-1, 5)
		} else {
			streak = 0
		}

		shotType := models.ShotTypeMiss
		if hit {
			shotType = []string{models.ShotTypeSwish, models.ShotTypeRimIn, models.ShotTypeBackboard}[rand.IntN(3)]
		}

		if _, err := s.shots.CreateShot(ctx, &models.ShotCreateRequest{
			GameID:     game.ID,
			Angle:      40 + rand.Float64()*20,
			Power:      0.4 + rand.Float64()*0.5,
			ReleaseX:   rand.Float64() * 100,
			ReleaseY:   rand.Float64() * 100,
			Made:       &hit,
			ShotType:   &shotType,
			ShotNumber: i,
		}); err != nil {
			return err
		}
	}

	completed := true
	taken := s.shotsPerGame
	_, err = s.games.UpdateGame(ctx, game.ID, &models.GameUpdateRequest{
		Score:      &score,
		ShotsTaken: &taken,
		ShotsMade:  &made,
		Streak:     &streak,
		MaxStreak:  &maxStreak,
		Completed:  &completed,
	})
	return err
}
