package repository

import (
	"context"

	"swish-api/internal/models"

	"gorm.io/gorm"
)

// Repository handles all relational database operations
type Repository struct {
	db *gorm.DB
}

// New creates a new repository backed by the given GORM handle
func New(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// AutoMigrate runs database migrations for all tables
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&models.User{}, &models.Game{}, &models.Shot{})
}

// Ping checks if the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
