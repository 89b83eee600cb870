package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost represents a cultural blog article
type BlogPost struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	UUID        string         `gorm:"uniqueIndex;type:varchar(36)" json:"id"`
	Title       string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=3,max=255"`
	Excerpt     string         `gorm:"type:text" json:"excerpt"`
	Content     string         `gorm:"type:longtext" json:"content" validate:"required"`
	ImageURL    string         `gorm:"type:varchar(255)" json:"image_url"`
	AuthorID    uint           `gorm:"index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"author"`
	AuthorName  string         `gorm:"type:varchar(150)" json:"author_name"`
	Published   bool           `gorm:"type:tinyint(1);default:0;index" json:"published"`
	Views       int64          `gorm:"default:0" json:"views"`
	Likes       int64          `gorm:"default:0" json:"likes"`
	Dislikes    int64          `gorm:"default:0" json:"dislikes"`
	ReadingTime int            `gorm:"default:0" json:"reading_time"` // minutes
	Category    string         `gorm:"type:varchar(50);default:'history'" json:"category"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the BlogPost model
func (BlogPost) TableName() string {
	return "blog_posts"
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.UUID == "" {
		b.UUID = uuid.New().String()
	}
	return nil
}
