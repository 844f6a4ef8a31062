package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reaction is unique per (message, member, value); the workspace id is
// denormalized from the message for direct lookup. CreatedAt gives the
// stable insertion order used by listings.
type Reaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Value       string    `gorm:"not null;uniqueIndex:idx_reactions_triple"`
	MessageID   uuid.UUID `gorm:"not null;uniqueIndex:idx_reactions_triple"`
	MemberID    uuid.UUID `gorm:"not null;uniqueIndex:idx_reactions_triple"`
	WorkspaceID uuid.UUID `gorm:"not null;index"`
	CreatedAt   time.Time

	Member Member `gorm:"foreignKey:MemberID"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
