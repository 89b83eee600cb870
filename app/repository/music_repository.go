package repository

import (
	"github.com/naijavibes/NaijaVibes/app/models"
	"gorm.io/gorm"
)

// musicRepository implements the MusicRepository interface
type musicRepository struct {
	db *gorm.DB
}

// NewMusicRepository creates a new music repository instance
func NewMusicRepository(db *gorm.DB) MusicRepository {
	return &musicRepository{db: db}
}

// Create creates a new music track in the database
func (r *musicRepository) Create(track *models.MusicTrack) error {
	return r.db.Create(track).Error
}

// GetByUUID retrieves a track by its public UUID
func (r *musicRepository) GetByUUID(uuid string) (*models.MusicTrack, error) {
	var track models.MusicTrack
	err := r.db.Where("uuid = ?", uuid).First(&track).Error
	if err != nil {
		return nil, err
	}
	return &track, nil
}

// List retrieves tracks with pagination, optionally filtered by category
func (r *musicRepository) List(category string, offset, limit int) ([]models.MusicTrack, error) {
	var tracks []models.MusicTrack
	q := r.db.Order("created_at DESC")
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	err := q.Offset(offset).Limit(limit).Find(&tracks).Error
	return tracks, err
}

// IncrementPlays atomically bumps the play counter
func (r *musicRepository) IncrementPlays(id uint) error {
	return r.db.Model(&models.MusicTrack{}).Where("id = ?", id).
		UpdateColumn("plays", gorm.Expr("plays + 1")).Error
}

// IncrementDownloads atomically bumps the download counter
func (r *musicRepository) IncrementDownloads(id uint) error {
	return r.db.Model(&models.MusicTrack{}).Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
}

// Count returns the total number of tracks
func (r *musicRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MusicTrack{}).Count(&count).Error
	return count, err
}
