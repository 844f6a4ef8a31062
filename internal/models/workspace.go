package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workspace is the root aggregate: members, channels, conversations,
// messages and reactions all belong to exactly one workspace.
type Workspace struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	UserID    uuid.UUID `gorm:"not null"` // owning user
	JoinCode  string    `gorm:"uniqueIndex;not null;size:6"`
	CreatedAt time.Time
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
