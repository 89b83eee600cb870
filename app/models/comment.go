package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs to either a post or a blog post and supports one level of
// threading via ParentID. Comments start unapproved and are hidden until an
// admin approves them.
type Comment struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	UUID        string         `gorm:"uniqueIndex;type:varchar(36)" json:"id"`
	Content     string         `gorm:"type:text;not null" json:"content" validate:"required,min=1,max=5000"`
	AuthorName  string         `gorm:"type:varchar(150);not null" json:"author_name" validate:"required,min=1,max=150"`
	AuthorEmail string         `gorm:"type:varchar(200)" json:"author_email" validate:"omitempty,email"`
	PostID      *uint          `gorm:"index" json:"post_id,omitempty"`
	BlogPostID  *uint          `gorm:"index" json:"blog_post_id,omitempty"`
	ParentID    *uint          `gorm:"index" json:"parent_id,omitempty"`
	Approved    bool           `gorm:"type:tinyint(1);default:0;index" json:"approved"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	return nil
}
