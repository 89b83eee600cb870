package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation links two dating profiles that have exchanged messages
type Conversation struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	UUID           string         `gorm:"uniqueIndex;type:varchar(36)" json:"id"`
	Participant1ID uint           `gorm:"not null;index:idx_conversations_participants,priority:1" json:"participant1_id"`
	Participant2ID uint           `gorm:"not null;index:idx_conversations_participants,priority:2" json:"participant2_id"`
	Participant1   DatingProfile  `gorm:"foreignKey:Participant1ID" json:"participant1"`
	Participant2   DatingProfile  `gorm:"foreignKey:Participant2ID" json:"participant2"`
	LastMessageAt  time.Time      `gorm:"autoCreateTime;index" json:"last_message_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Conversation model
func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	return nil
}
