package repository

import (
	"github.com/naijavibes/NaijaVibes/app/models"
	"gorm.io/gorm"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create creates a new comment in the database
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetApprovedForPost retrieves approved comments of a post, newest first
func (r *commentRepository) GetApprovedForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ? AND approved = ?", postID, true).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// GetApprovedForBlogPost retrieves approved comments of a blog post, newest first
func (r *commentRepository) GetApprovedForBlogPost(blogPostID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("blog_post_id = ? AND approved = ?", blogPostID, true).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// Approve marks a comment as visible
func (r *commentRepository) Approve(id uint) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).
		UpdateColumn("approved", true).Error
}

// Delete soft deletes a comment by its ID
func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
