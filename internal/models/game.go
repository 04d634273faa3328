package models

import (
	"time"

	"gorm.io/datatypes"
)

// Game modes
const (
	ModeClassic    = "classic"
	ModeTimeAttack = "time_attack"
	ModeStreak     = "streak"
	ModeDistance   = "distance"
)

// Difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Game is a single play session. Counters start at zero and are advanced by
// the client through partial updates; the owning user's cumulative stats are
// rolled up exactly once, on the transition to completed.
type Game struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	GameMode   string         `gorm:"not null;index" json:"game_mode"`
	Score      int            `gorm:"not null;default:0;index" json:"score"`
	ShotsTaken int            `gorm:"not null;default:0" json:"shots_taken"`
	ShotsMade  int            `gorm:"not null;default:0" json:"shots_made"`
	Streak     int            `gorm:"not null;default:0" json:"streak"`
	MaxStreak  int            `gorm:"not null;default:0" json:"max_streak"`
	Duration   *float64       `json:"duration,omitempty"`
	Difficulty string         `gorm:"not null;default:medium" json:"difficulty"`
	Completed  bool           `gorm:"not null;default:false" json:"completed"`
	GameData   datatypes.JSON `json:"game_data,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`

	User  User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Shots []Shot `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Game) TableName() string {
	return "games"
}

// Accuracy returns the game's shooting percentage, rounded to two decimals.
func (g *Game) Accuracy() float64 {
	return accuracy(g.ShotsMade, g.ShotsTaken)
}

// GameCreateRequest is the request payload for starting a game
type GameCreateRequest struct {
	GameMode   string `json:"game_mode" validate:"required,oneof=classic time_attack streak distance"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// GameUpdateRequest carries a partial update. Nil fields are left untouched.
type GameUpdateRequest struct {
	Score      *int            `json:"score" validate:"omitempty,min=0"`
	ShotsTaken *int            `json:"shots_taken" validate:"omitempty,min=0"`
	ShotsMade  *int            `json:"shots_made" validate:"omitempty,min=0"`
	Streak     *int            `json:"streak" validate:"omitempty,min=0"`
	MaxStreak  *int            `json:"max_streak" validate:"omitempty,min=0"`
	Duration   *float64        `json:"duration" validate:"omitempty,min=0"`
	Completed  *bool           `json:"completed"`
	GameData   *datatypes.JSON `json:"game_data"`
}

// Apply merges the set fields into the game and returns the affected column
// names, for use with a column-selected UPDATE.
func (r *GameUpdateRequest) Apply(g *Game) []string {
	var cols []string
	if r.Score != nil {
		g.Score = *r.Score
		cols = append(cols, "score")
	}
	if r.ShotsTaken != nil {
		g.ShotsTaken = *r.ShotsTaken
		cols = append(cols, "shots_taken")
	}
	if r.ShotsMade != nil {
		g.ShotsMade = *r.ShotsMade
		cols = append(cols, "shots_made")
	}
	if r.Streak != nil {
		g.Streak = *r.Streak
		cols = append(cols, "streak")
	}
	if r.MaxStreak != nil {
		g.MaxStreak = *r.MaxStreak
		cols = append(cols, "max_streak")
	}
	if r.Duration != nil {
		g.Duration = r.Duration
		cols = append(cols, "duration")
	}
	if r.Completed != nil {
		g.Completed = *r.Completed
		cols = append(cols, "completed")
	}
	if r.GameData != nil {
		g.GameData = *r.GameData
		cols = append(cols, "game_data")
	}
	return cols
}

// RequestsCompletion reports whether the update asks for completed=true.
func (r *GameUpdateRequest) RequestsCompletion() bool {
	return r.Completed != nil && *r.Completed
}

// GameResponse is the serialized form of a game
type GameResponse struct {
	ID         uint           `json:"id"`
	UserID     uint           `json:"user_id"`
	GameMode   string         `json:"game_mode"`
	Score      int            `json:"score"`
	ShotsTaken int            `json:"shots_taken"`
	ShotsMade  int            `json:"shots_made"`
	Streak     int            `json:"streak"`
	MaxStreak  int            `json:"max_streak"`
	Duration   *float64       `json:"duration,omitempty"`
	Difficulty string         `json:"difficulty"`
	Completed  bool           `json:"completed"`
	Accuracy   float64        `json:"accuracy"`
	GameData   datatypes.JSON `json:"game_data,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ToResponse builds the API representation of the game
func (g *Game) ToResponse() GameResponse {
	return GameResponse{
		ID:         g.ID,
		UserID:     g.UserID,
		GameMode:   g.GameMode,
		Score:      g.Score,
		ShotsTaken: g.ShotsTaken,
		ShotsMade:  g.ShotsMade,
		Streak:     g.Streak,
		MaxStreak:  g.MaxStreak,
		Duration:   g.Duration,
		Difficulty: g.Difficulty,
		Completed:  g.Completed,
		Accuracy:   g.Accuracy(),
		GameData:   g.GameData,
		CreatedAt:  g.CreatedAt,
	}
}

// GameWithShots is a game record plus its recorded shots
type GameWithShots struct {
	GameResponse
	Shots []ShotResponse `json:"shots"`
}
