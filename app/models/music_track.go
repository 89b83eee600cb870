package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MusicCategoryGospel     = "gospel"
	MusicCategoryMainstream = "mainstream"
)

// MusicTrack represents an entry in the music catalog
type MusicTrack struct {
	ID            uint           `gorm:"primaryKey" json:"-"`
	UUID          string         `gorm:"uniqueIndex;type:varchar(36)" json:"id"`
	Title         string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=1,max=255"`
	Artist        string         `gorm:"type:varchar(150)" json:"artist" validate:"required,min=1,max=150"`
	Duration      string         `gorm:"type:varchar(10)" json:"duration"` // format: "4:32"
	AudioURL      string         `gorm:"type:varchar(255)" json:"audio_url"`
	ImageURL      string         `gorm:"type:varchar(255)" json:"image_url"`
	Category      string         `gorm:"type:varchar(20);default:'mainstream';index" json:"category" validate:"omitempty,oneof=gospel mainstream"`
	IsTraditional bool           `gorm:"type:tinyint(1);default:1" json:"is_traditional"`
	Plays         int64          `gorm:"default:0" json:"plays"`
	Downloads     int64          `gorm:"default:0" json:"downloads"`
	Likes         int64          `gorm:"default:0" json:"likes"`
	Dislikes      int64          `gorm:"default:0" json:"dislikes"`
	UploadedBy    uint           `gorm:"index" json:"uploaded_by"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MusicTrack model
func (MusicTrack) TableName() string {
	return "music_tracks"
}

func (m *MusicTrack) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.New().String()
	}
	return nil
}
