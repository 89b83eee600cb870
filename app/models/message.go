package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a single chat message inside a conversation
type Message struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	UUID           string         `gorm:"uniqueIndex;type:varchar(36)" json:"id"`
	ConversationID uint           `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint           `gorm:"not null;index" json:"sender_id"`
	Message        string         `gorm:"type:text;not null" json:"message" validate:"required,min=1,max=5000"`
	Read           bool           `gorm:"type:tinyint(1);default:0;index" json:"read"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.New().String()
	}
	return nil
}
