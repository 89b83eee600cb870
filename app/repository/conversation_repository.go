package repository

import (
	"time"

	"github.com/naijavibes/NaijaVibes/app/models"
	"gorm.io/gorm"
)

// conversationRepository implements the ConversationRepository interface
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository instance
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create creates a new conversation in the database
func (r *conversationRepository) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

// GetByUUID retrieves a conversation by its public UUID
func (r *conversationRepository) GetByUUID(uuid string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Preload("Participant1").Preload("Participant2").
		Where("uuid = ?", uuid).First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// GetByParticipants finds the conversation between two profiles regardless of
// which side initiated it
func (r *conversationRepository) GetByParticipants(profile1ID, profile2ID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Where(
		"(participant1_id = ? AND participant2_id = ?) OR (participant1_id = ? AND participant2_id = ?)",
		profile1ID, profile2ID, profile2ID, profile1ID,
	).First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListByProfile retrieves all conversations a profile takes part in, most
// recently active first
func (r *conversationRepository) ListByProfile(profileID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Preload("Participant1").Preload("Participant2").
		Where("participant1_id = ? OR participant2_id = ?", profileID, profileID).
		Order("last_message_at DESC").Find(&conversations).Error
	return conversations, err
}

// TouchLastMessageAt refreshes the conversation activity timestamp
func (r *conversationRepository) TouchLastMessageAt(id uint) error {
	return r.db.Model(&models.Conversation{}).Where("id = ?", id).
		UpdateColumn("last_message_at", time.Now()).Error
}

// CreateMessage stores a new message
func (r *conversationRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetMessages retrieves messages of a conversation, newest first
func (r *conversationRepository) GetMessages(conversationID uint, offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&messages).Error
	return messages, err
}

// MarkMessagesRead flags all messages from the other participant as read
func (r *conversationRepository) MarkMessagesRead(conversationID, readerProfileID uint) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND `read` = ?", conversationID, readerProfileID, false).
		UpdateColumn("read", true).Error
}
