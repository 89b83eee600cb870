package repository

import (
	"github.com/naijavibes/NaijaVibes/app/models"
	"gorm.io/gorm"
)

// blogPostRepository implements the BlogPostRepository interface
type blogPostRepository struct {
	db *gorm.DB
}

// NewBlogPostRepository creates a new blog post repository instance
func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

// Create creates a new blog post in the database
func (r *blogPostRepository) Create(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// GetByUUID retrieves a blog post by its public UUID
func (r *blogPostRepository) GetByUUID(uuid string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").Where("uuid = ?", uuid).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPublished retrieves published blog posts with pagination
func (r *blogPostRepository) GetPublished(offset, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Preload("Author").Where("published = ?", true).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// Update updates an existing blog post in the database
func (r *blogPostRepository) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete soft deletes a blog post by its ID
func (r *blogPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.BlogPost{}, id).Error
}

// IncrementViews atomically bumps the view counter
func (r *blogPostRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// UpdateLikes sets like/dislike counters
func (r *blogPostRepository) UpdateLikes(id uint, likes, dislikes int64) error {
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).
		Updates(map[string]interface{}{"likes": likes, "dislikes": dislikes}).Error
}

// Count returns the total number of blog posts
func (r *blogPostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Count(&count).Error
	return count, err
}
