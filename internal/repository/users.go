package repository

import (
	"context"
	"errors"

	"swish-api/internal/models"

	"gorm.io/gorm"
)

// CreateUser inserts a new user, failing when the username is taken
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return models.ErrUsernameTaken
	}

	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent insert of the same username.
		return models.ErrUsernameTaken
	}
	return err
}

// GetUser retrieves a user by ID
func (r *Repository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by exact username match
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetTopUsers retrieves users ordered by total score descending.
// The order among users with equal total scores is not defined.
func (r *Repository) GetTopUsers(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("total_score DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// BulkInsertUsers efficiently inserts multiple users (used by the seeder)
func (r *Repository) BulkInsertUsers(ctx context.Context, users []models.User, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(users, batchSize).Error
}

// GetAllUsers retrieves all users (used by the seeder and simulator)
func (r *Repository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Find(&users).Error
	return users, err
}

// DeleteUser removes a user; owned games and shots cascade
func (r *Repository) DeleteUser(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
