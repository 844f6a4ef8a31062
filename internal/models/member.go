package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Member is a user's membership record within one workspace. A user has
// at most one membership per workspace.
type Member struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkspaceID uuid.UUID `gorm:"not null;uniqueIndex:idx_members_workspace_user"`
	UserID      uuid.UUID `gorm:"not null;uniqueIndex:idx_members_workspace_user"`
	Role        Role      `gorm:"not null"`

	User User `gorm:"foreignKey:UserID"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
