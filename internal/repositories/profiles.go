package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftfolio/craftfolio-server/internal/models"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("profile by user id: %w", err)
	}
	return &profile, nil
}

// SaveProfile creates the profile on first submission and updates it in
// place afterwards. Concurrent updates are last-write-wins; the backing
// store's own guarantees are the only coordination.
func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Profile{})
	if res.Error != nil {
		return fmt.Errorf("delete profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
