package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContentTypeNews      = "news"
	ContentTypeCelebrity = "celebrity"
)

// Post represents a news or celebrity article
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	UUID        string         `gorm:"uniqueIndex;type:varchar(36)" json:"id"`
	Title       string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=3,max=255"`
	Excerpt     string         `gorm:"type:text" json:"excerpt"`
	Content     string         `gorm:"type:longtext" json:"content" validate:"required"`
	ImageURL    string         `gorm:"type:varchar(255)" json:"image_url"`
	ContentType string         `gorm:"type:varchar(20);index" json:"content_type" validate:"required,oneof=news celebrity"`
	AuthorID    uint           `gorm:"index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"author"`
	Published   bool           `gorm:"type:tinyint(1);default:0;index" json:"published"`
	Views       int64          `gorm:"default:0" json:"views"`
	Likes       int64          `gorm:"default:0" json:"likes"`
	Dislikes    int64          `gorm:"default:0" json:"dislikes"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Post model
func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}
