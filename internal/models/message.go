package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message lives in exactly one channel or conversation. A reply carries a
// non-owning reference to its parent and inherits the parent's placement.
// Timestamps are milliseconds since epoch.
type Message struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Body            string     `gorm:"not null"`
	ImageID         *string
	MemberID        uuid.UUID  `gorm:"not null;index"`
	WorkspaceID     uuid.UUID  `gorm:"not null;index"`
	ChannelID       *uuid.UUID `gorm:"index"`
	ConversationID  *uuid.UUID `gorm:"index"`
	ParentMessageID *uuid.UUID `gorm:"index"`
	CreatedAt       int64      `gorm:"autoCreateTime:milli"`
	UpdatedAt       int64      `gorm:"autoUpdateTime:milli"`

	Member Member `gorm:"foreignKey:MemberID"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
