package models

import (
	"time"

	"gorm.io/datatypes"
)

// Shot types
const (
	ShotTypeSwish     = "swish"
	ShotTypeRimIn     = "rim_in"
	ShotTypeBackboard = "backboard"
	ShotTypeMiss      = "miss"
)

// Shot records one attempt. Immutable after creation; removed only by
// cascading game or user deletion. UserID is denormalized from the owning
// game when the shot is created.
type Shot struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	GameID uint `gorm:"not null;index" json:"game_id"`

	// Shot parameters as released by the client.
	Angle    float64 `gorm:"not null" json:"angle"`
	Power    float64 `gorm:"not null" json:"power"`
	ReleaseX float64 `gorm:"not null" json:"release_x"`
	ReleaseY float64 `gorm:"not null" json:"release_y"`

	Made     bool     `gorm:"not null" json:"made"`
	ShotType *string  `json:"shot_type,omitempty"`
	Distance *float64 `json:"distance,omitempty"`

	// Opaque replay data, stored verbatim.
	Trajectory datatypes.JSON `json:"trajectory,omitempty"`

	ShotNumber int       `gorm:"not null" json:"shot_number"`
	Timestamp  time.Time `gorm:"autoCreateTime" json:"timestamp"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Game Game `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Shot) TableName() string {
	return "shots"
}

// ShotCreateRequest is the request payload for recording a shot
type ShotCreateRequest struct {
	GameID     uint           `json:"game_id" validate:"required"`
	Angle      float64        `json:"angle"`
	Power      float64        `json:"power" validate:"min=0,max=1"`
	ReleaseX   float64        `json:"release_x"`
	ReleaseY   float64        `json:"release_y"`
	Made       *bool          `json:"made" validate:"required"`
	ShotType   *string        `json:"shot_type" validate:"omitempty,oneof=swish rim_in backboard miss"`
	Distance   *float64       `json:"distance" validate:"omitempty,min=0"`
	Trajectory datatypes.JSON `json:"trajectory"`
	ShotNumber int            `json:"shot_number" validate:"required,min=1"`
}

// ShotResponse is the serialized form of a shot, without trajectory
type ShotResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	GameID     uint      `json:"game_id"`
	Angle      float64   `json:"angle"`
	Power      float64   `json:"power"`
	ReleaseX   float64   `json:"release_x"`
	ReleaseY   float64   `json:"release_y"`
	Made       bool      `json:"made"`
	ShotType   *string   `json:"shot_type,omitempty"`
	Distance   *float64  `json:"distance,omitempty"`
	ShotNumber int       `json:"shot_number"`
	Timestamp  time.Time `json:"timestamp"`
}

// ToResponse builds the API representation of the shot
func (s *Shot) ToResponse() ShotResponse {
	return ShotResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		GameID:     s.GameID,
		Angle:      s.Angle,
		Power:      s.Power,
		ReleaseX:   s.ReleaseX,
		ReleaseY:   s.ReleaseY,
		Made:       s.Made,
		ShotType:   s.ShotType,
		Distance:   s.Distance,
		ShotNumber: s.ShotNumber,
		Timestamp:  s.Timestamp,
	}
}

// ShotWithTrajectory is a shot including its replay trajectory
type ShotWithTrajectory struct {
	ShotResponse
	Trajectory datatypes.JSON `json:"trajectory,omitempty"`
}

// ToResponseWithTrajectory builds the API representation including trajectory
func (s *Shot) ToResponseWithTrajectory() ShotWithTrajectory {
	return ShotWithTrajectory{
		ShotResponse: s.ToResponse(),
		Trajectory:   s.Trajectory,
	}
}

// ShotChartPosition is one release point on the shot chart
type ShotChartPosition struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Made     bool    `json:"made"`
	ShotType *string `json:"shot_type,omitempty"`
}

// ShotChart aggregates a user's shots for heat-map rendering
type ShotChart struct {
	TotalShots int                 `json:"total_shots"`
	Made       int                 `json:"made"`
	Missed     int                 `json:"missed"`
	ByPosition []ShotChartPosition `json:"by_position"`
}
