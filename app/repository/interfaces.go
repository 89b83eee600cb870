package repository

import (
	"github.com/naijavibes/NaijaVibes/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	GetByOAuth(provider, providerID string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// PostRepository defines the interface for news/celebrity post operations
type PostRepository interface {
	Create(post *models.Post) error
	GetByUUID(uuid string) (*models.Post, error)
	GetPublished(contentType string, offset, limit int) ([]models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
	IncrementViews(id uint) error
	UpdateLikes(id uint, likes, dislikes int64) error
	Count() (int64, error)
}

// BlogPostRepository defines the interface for blog post operations
type BlogPostRepository interface {
	Create(post *models.BlogPost) error
	GetByUUID(uuid string) (*models.BlogPost, error)
	GetPublished(offset, limit int) ([]models.BlogPost, error)
	Update(post *models.BlogPost) error
	Delete(id uint) error
	IncrementViews(id uint) error
	UpdateLikes(id uint, likes, dislikes int64) error
	Count() (int64, error)
}

// MusicRepository defines the interface for music catalog operations
type MusicRepository interface {
	Create(track *models.MusicTrack) error
	GetByUUID(uuid string) (*models.MusicTrack, error)
	List(category string, offset, limit int) ([]models.MusicTrack, error)
	IncrementPlays(id uint) error
	IncrementDownloads(id uint) error
	Count() (int64, error)
}

// DatingRepository defines the interface for dating profile operations
type DatingRepository interface {
	Create(profile *models.DatingProfile) error
	GetByUserID(userID uint) (*models.DatingProfile, error)
	GetByUUID(uuid string) (*models.DatingProfile, error)
	Update(profile *models.DatingProfile) error
	ListVisible(excludeUserID uint, offset, limit int) ([]models.DatingProfile, error)
	Count() (int64, error)
}

// ConversationRepository defines the interface for conversations and messages
type ConversationRepository interface {
	Create(conversation *models.Conversation) error
	GetByUUID(uuid string) (*models.Conversation, error)
	GetByParticipants(profile1ID, profile2ID uint) (*models.Conversation, error)
	ListByProfile(profileID uint) ([]models.Conversation, error)
	TouchLastMessageAt(id uint) error
	CreateMessage(message *models.Message) error
	GetMessages(conversationID uint, offset, limit int) ([]models.Message, error)
	MarkMessagesRead(conversationID, readerProfileID uint) error
}

// CommentRepository defines the interface for comment operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetApprovedForPost(postID uint) ([]models.Comment, error)
	GetApprovedForBlogPost(blogPostID uint) ([]models.Comment, error)
	Approve(id uint) error
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Post         PostRepository
	BlogPost     BlogPostRepository
	Music        MusicRepository
	Dating       DatingRepository
	Conversation ConversationRepository
	Comment      CommentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Post:         NewPostRepository(db),
		BlogPost:     NewBlogPostRepository(db),
		Music:        NewMusicRepository(db),
		Dating:       NewDatingRepository(db),
		Conversation: NewConversationRepository(db),
		Comment:      NewCommentRepository(db),
	}
}
