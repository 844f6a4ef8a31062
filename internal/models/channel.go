package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Channel is a named message stream within a workspace. Names are unique
// per workspace; every workspace gets a "general" channel at creation.
type Channel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;uniqueIndex:idx_channels_workspace_name"`
	WorkspaceID uuid.UUID `gorm:"not null;uniqueIndex:idx_channels_workspace_name"`
	CreatedAt   time.Time
}

func (c *Channel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
