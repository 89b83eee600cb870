package repository

import (
	"github.com/naijavibes/NaijaVibes/app/models"
	"gorm.io/gorm"
)

// datingRepository implements the DatingRepository interface
type datingRepository struct {
	db *gorm.DB
}

// NewDatingRepository creates a new dating repository instance
func NewDatingRepository(db *gorm.DB) DatingRepository {
	return &datingRepository{db: db}
}

// Create creates a new dating profile in the database
func (r *datingRepository) Create(profile *models.DatingProfile) error {
	return r.db.Create(profile).Error
}

// GetByUserID retrieves the profile owned by a user
func (r *datingRepository) GetByUserID(userID uint) (*models.DatingProfile, error) {
	var profile models.DatingProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByUUID retrieves a profile by its public UUID
func (r *datingRepository) GetByUUID(uuid string) (*models.DatingProfile, error) {
	var profile models.DatingProfile
	err := r.db.Where("uuid = ?", uuid).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update updates an existing profile in the database
func (r *datingRepository) Update(profile *models.DatingProfile) error {
	return r.db.Save(profile).Error
}

// ListVisible retrieves visible profiles excluding the browsing user's own
func (r *datingRepository) ListVisible(excludeUserID uint, offset, limit int) ([]models.DatingProfile, error) {
	var profiles []models.DatingProfile
	err := r.db.Where("is_visible = ? AND user_id <> ?", true, excludeUserID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&profiles).Error
	return profiles, err
}

// Count returns the total number of dating profiles
func (r *datingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.DatingProfile{}).Count(&count).Error
	return count, err
}
