package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a two-party private stream. The member pair is a set:
// the store keeps it normalized (smaller uuid first) so the unique index
// covers both argument orders.
type Conversation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkspaceID uuid.UUID `gorm:"not null;uniqueIndex:idx_conversations_pair"`
	MemberOneID uuid.UUID `gorm:"not null;uniqueIndex:idx_conversations_pair"`
	MemberTwoID uuid.UUID `gorm:"not null;uniqueIndex:idx_conversations_pair"`

	MemberOne Member `gorm:"foreignKey:MemberOneID"`
	MemberTwo Member `gorm:"foreignKey:MemberTwoID"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
