package service

import (
	"context"
	"testing"

	"swish-api/internal/models"
	"swish-api/internal/repository"

	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ShotServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	repo    *repository.Repository
	games   *GameService
	service *ShotService
	ctx     context.Context
	owner   *models.User
	game    *models.Game
}

func TestShotServiceSuite(t *testing.T) {
	suite.Run(t, new(ShotServiceSuite))
}

func (s *ShotServiceSuite) SetupTest() {
	s.db, s.repo = newTestDB(s.T())
	s.games = NewGameService(s.repo, nil)
	s.service = NewShotService(s.repo)
	s.ctx = context.Background()

	owner, err := NewUserService(s.repo).CreateUser(s.ctx, &models.UserCreateRequest{Username: "shooter"})
	s.Require().NoError(err)
	s.owner = owner

	game, err := s.games.CreateGame(s.ctx, owner.ID, &models.GameCreateRequest{GameMode: models.ModeClassic})
	s.Require().NoError(err)
	s.game = game
}

func (s *ShotServiceSuite) recordShot(gameID uint, number int, made bool, shotType *string) *models.Shot {
	shot, err := s.service.CreateShot(s.ctx, &models.ShotCreateRequest{
		GameID:     gameID,
		Angle:      48.5,
		Power:      0.73,
		ReleaseX:   12.0,
		ReleaseY:   88.0,
		Made:       &made,
		ShotType:   shotType,
		ShotNumber: number,
	})
	s.Require().NoError(err)
	return shot
}

func (s *ShotServiceSuite) TestCreateShotCopiesOwner() {
	shot := s.recordShot(s.game.ID, 1, true, nil)

	s.NotZero(shot.ID)
	// The owner is taken from the game, never from the request.
	s.Equal(s.owner.ID, shot.UserID)
	s.Equal(s.game.ID, shot.GameID)
	s.Equal(1, shot.ShotNumber)
	s.False(shot.Timestamp.IsZero())
}

func (s *ShotServiceSuite) TestCreateShotStoresTrajectoryVerbatim() {
	trajectory := datatypes.JSON(`[{"x":0,"y":0,"t":0},{"x":1.5,"y":2.25,"t":0.1}]`)
	made := true

	shot, err := s.service.CreateShot(s.ctx, &models.ShotCreateRequest{
		GameID:     s.game.ID,
		Angle:      45,
		Power:      0.9,
		Made:       &made,
		Trajectory: trajectory,
		ShotNumber: 1,
	})
	s.Require().NoError(err)

	stored, err := s.service.GetShot(s.ctx, shot.ID)
	s.Require().NoError(err)
	s.JSONEq(string(trajectory), string(stored.Trajectory))
}

func (s *ShotServiceSuite) TestCreateShotUnknownGame() {
	made := true
	_, err := s.service.CreateShot(s.ctx, &models.ShotCreateRequest{
		GameID:     9999,
		Made:       &made,
		ShotNumber: 1,
	})
	s.ErrorIs(err, models.ErrGameNotFound)
}

func (s *ShotServiceSuite) TestGetShotUnknown() {
	_, err := s.service.GetShot(s.ctx, 9999)
	s.ErrorIs(err, models.ErrShotNotFound)
}

func (s *ShotServiceSuite) TestListGameShotsOrderedByShotNumber() {
	// Insert out of order; the listing must sort by shot number.
	s.recordShot(s.game.ID, 3, false, nil)
	s.recordShot(s.game.ID, 1, true, nil)
	s.recordShot(s.game.ID, 2, true, nil)

	shots, err := s.service.ListGameShots(s.ctx, s.game.ID)
	s.Require().NoError(err)
	s.Require().Len(shots, 3)
	s.Equal(1, shots[0].ShotNumber)
	s.Equal(2, shots[1].ShotNumber)
	s.Equal(3, shots[2].ShotNumber)
}

func (s *ShotServiceSuite) TestListGameShotsUnknownGame() {
	_, err := s.service.ListGameShots(s.ctx, 9999)
	s.ErrorIs(err, models.ErrGameNotFound)
}

func (s *ShotServiceSuite) TestShotChartCounts() {
	swish := models.ShotTypeSwish
	miss := models.ShotTypeMiss

	for i := 1; i <= 3; i++ {
		s.recordShot(s.game.ID, i, true, &swish)
	}
	for i := 4; i <= 5; i++ {
		s.recordShot(s.game.ID, i, false, &miss)
	}

	chart, err := s.service.GetShotChart(s.ctx, s.owner.ID, "")
	s.Require().NoError(err)

	s.Equal(5, chart.TotalShots)
	s.Equal(3, chart.Made)
	s.Equal(2, chart.Missed)
	s.Require().Len(chart.ByPosition, 5)
	s.Equal(12.0, chart.ByPosition[0].X)
	s.Equal(88.0, chart.ByPosition[0].Y)
}

func (s *ShotServiceSuite) TestShotChartFilteredByGameMode() {
	s.recordShot(s.game.ID, 1, true, nil)

	streakGame, err := s.games.CreateGame(s.ctx, s.owner.ID, &models.GameCreateRequest{GameMode: models.ModeStreak})
	s.Require().NoError(err)
	s.recordShot(streakGame.ID, 1, false, nil)
	s.recordShot(streakGame.ID, 2, false, nil)

	chart, err := s.service.GetShotChart(s.ctx, s.owner.ID, models.ModeStreak)
	s.Require().NoError(err)
	s.Equal(2, chart.TotalShots)
	s.Equal(0, chart.Made)
	s.Equal(2, chart.Missed)

	all, err := s.service.GetShotChart(s.ctx, s.owner.ID, "")
	s.Require().NoError(err)
	s.Equal(3, all.TotalShots)
}

func (s *ShotServiceSuite) TestShotChartEmptyUser() {
	chart, err := s.service.GetShotChart(s.ctx, 424242, "")
	s.Require().NoError(err)
	s.Equal(0, chart.TotalShots)
	s.Empty(chart.ByPosition)
}
