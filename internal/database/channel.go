package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MaheshMoholkar/slack/internal/models"
)

func (d *Database) CreateChannel(channel *models.Channel) error {
	return d.db.Create(channel).Error
}

func (d *Database) GetChannel(id uuid.UUID) (*models.Channel, error) {
	var channel models.Channel
	if err := d.db.First(&channel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (d *Database) GetWorkspaceChannels(workspaceID uuid.UUID) ([]models.Channel, error) {
	var channels []models.Channel
	err := d.db.
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&channels).Error
	return channels, err
}

func (d *Database) UpdateChannel(channel *models.Channel) error {
	return d.db.Save(channel).Error
}

// DeleteChannel removes the channel with all its messages and their
// reactions in one transaction.
func (d *Database) DeleteChannel(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("message_id IN (?)", tx.Model(&models.Message{}).Select("id").Where("channel_id = ?", id)).
			Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Message{}, "channel_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Channel{}, "id = ?", id).Error
	})
}
