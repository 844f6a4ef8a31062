package database

import (
	"github.com/google/uuid"

	"github.com/MaheshMoholkar/slack/internal/models"
)

func (d *Database) CreateMember(member *models.Member) error {
	return d.db.Create(member).Error
}

func (d *Database) GetMember(id uuid.UUID) (*models.Member, error) {
	var member models.Member
	if err := d.db.Preload("User").First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *Database) FindMemberByWorkspaceAndUser(workspaceID, userID uuid.UUID) (*models.Member, error) {
	var member models.Member
	err := d.db.Preload("User").
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *Database) GetWorkspaceMembers(workspaceID uuid.UUID) ([]models.Member, error) {
	var members []models.Member
	err := d.db.Preload("User").
		Where("workspace_id = ?", workspaceID).
		Find(&members).Error
	return members, err
}

func (d *Database) GetWorkspaceMembersByRole(workspaceID uuid.UUID, role models.Role) ([]models.Member, error) {
	var members []models.Member
	err := d.db.Preload("User").
		Where("workspace_id = ? AND role = ?", workspaceID, role).
		Find(&members).Error
	return members, err
}

func (d *Database) UpdateMember(member *models.Member) error {
	return d.db.Save(member).Error
}

func (d *Database) DeleteMember(id uuid.UUID) error {
	return d.db.Delete(&models.Member{}, "id = ?", id).Error
}
