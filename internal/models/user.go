package models

import (
	"math"
	"time"
)

// User represents a player account. Quick play allows accounts without an
// email or password, so both are optional.
type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	HashedPassword *string   `json:"-"`
	CreatedAt      time.Time `json:"created_at"`

	// Cumulative stats, incremented once per completed game.
	TotalGames int `gorm:"not null;default:0" json:"total_games"`
	TotalShots int `gorm:"not null;default:0" json:"total_shots"`
	TotalMakes int `gorm:"not null;default:0" json:"total_makes"`
	BestStreak int `gorm:"not null;default:0" json:"best_streak"`
	TotalScore int `gorm:"not null;default:0;index" json:"total_score"`

	Games []Game `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Shots []Shot `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// Accuracy returns the user's lifetime shooting percentage, rounded to two
// decimals. Zero when the user has not taken a shot.
func (u *User) Accuracy() float64 {
	return accuracy(u.TotalMakes, u.TotalShots)
}

// accuracy computes makes/shots as a percentage rounded to two decimals.
func accuracy(makes, shots int) float64 {
	if shots == 0 {
		return 0
	}
	return math.Round(float64(makes)/float64(shots)*100*100) / 100
}

// UserCreateRequest is the request payload for creating a user
type UserCreateRequest struct {
	Username string  `json:"username" validate:"required,min=1,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,max=128"`
}

// UserResponse is the serialized form of a user, including derived accuracy
type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      *string   `json:"email,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	TotalGames int       `json:"total_games"`
	TotalShots int       `json:"total_shots"`
	TotalMakes int       `json:"total_makes"`
	BestStreak int       `json:"best_streak"`
	TotalScore int       `json:"total_score"`
	Accuracy   float64   `json:"accuracy"`
}

// ToResponse builds the API representation of the user
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		CreatedAt:  u.CreatedAt,
		TotalGames: u.TotalGames,
		TotalShots: u.TotalShots,
		TotalMakes: u.TotalMakes,
		BestStreak: u.BestStreak,
		TotalScore: u.TotalScore,
		Accuracy:   u.Accuracy(),
	}
}

// UserStats is the stats summary returned by GET /users/:id/stats
type UserStats struct {
	TotalGames int     `json:"total_games"`
	TotalShots int     `json:"total_shots"`
	TotalMakes int     `json:"total_makes"`
	Accuracy   float64 `json:"accuracy"`
	BestStreak int     `json:"best_streak"`
	TotalScore int     `json:"total_score"`
}

// Stats builds the stats summary for the user
func (u *User) Stats() UserStats {
	return UserStats{
		TotalGames: u.TotalGames,
		TotalShots: u.TotalShots,
		TotalMakes: u.TotalMakes,
		Accuracy:   u.Accuracy(),
		BestStreak: u.BestStreak,
		TotalScore: u.TotalScore,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
