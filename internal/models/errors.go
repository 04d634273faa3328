package models

import "errors"

// Domain errors surfaced to API clients
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrGameNotFound  = errors.New("game not found")
	ErrShotNotFound  = errors.New("shot not found")
	ErrUsernameTaken = errors.New("username already exists")
)
