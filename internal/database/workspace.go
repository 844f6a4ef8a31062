package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MaheshMoholkar/slack/internal/models"
)

// CreateWorkspace persists the workspace together with its owner member
// and default channel in one transaction.
func (d *Database) CreateWorkspace(workspace *models.Workspace, owner *models.Member, general *models.Channel) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}
		owner.WorkspaceID = workspace.ID
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		general.WorkspaceID = workspace.ID
		return tx.Create(general).Error
	})
}

func (d *Database) GetWorkspace(id uuid.UUID) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := d.db.First(&workspace, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (d *Database) FindWorkspaceByJoinCode(joinCode string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := d.db.Where("join_code = ?", joinCode).First(&workspace).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (d *Database) GetUserWorkspaces(userID uuid.UUID) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := d.db.
		Joins("JOIN members ON members.workspace_id = workspaces.id").
		Where("members.user_id = ?", userID).
		Find(&workspaces).Error
	return workspaces, err
}

func (d *Database) UpdateWorkspace(workspace *models.Workspace) error {
	return d.db.Save(workspace).Error
}

// DeleteWorkspace walks the ownership graph top-down inside one
// transaction: reactions, messages, conversations, channels, members,
// then the workspace itself.
func (d *Database) DeleteWorkspace(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Reaction{}, "workspace_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Message{}, "workspace_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Conversation{}, "workspace_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Channel{}, "workspace_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Member{}, "workspace_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Workspace{}, "id = ?", id).Error
	})
}
