package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MaheshMoholkar/slack/internal/database"
	"github.com/MaheshMoholkar/slack/internal/dto"
	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/models"
)

type ChannelService struct {
	db          *database.Database
	broadcaster *events.Broadcaster
	log         *zap.Logger
}

func NewChannelService(db *database.Database, broadcaster *events.Broadcaster, log *zap.Logger) *ChannelService {
	return &ChannelService{db: db, broadcaster: broadcaster, log: log}
}

// Create rejects a duplicate name within the workspace as a Conflict.
// Channel create is not idempotent: the race loser fails.
func (s *ChannelService) Create(name string, workspaceID uuid.UUID) (*models.Channel, error) {
	if _, err := s.db.GetWorkspace(workspaceID); err != nil {
		return nil, wrapLookup(err, "workspace %s", workspaceID)
	}

	channel := &models.Channel{
		Name:        name,
		WorkspaceID: workspaceID,
	}
	if err := s.db.CreateChannel(channel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("channel %q already exists in workspace %s", name, workspaceID)
		}
		return nil, err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(workspaceID), events.Event{
		Type:        events.TypeChannelCreated,
		WorkspaceID: workspaceID.String(),
		Payload:     dto.FromChannel(channel),
	})

	return channel, nil
}

func (s *ChannelService) Get(channelID uuid.UUID) (*models.Channel, error) {
	channel, err := s.db.GetChannel(channelID)
	if err != nil {
		return nil, wrapLookup(err, "channel %s", channelID)
	}
	return channel, nil
}

func (s *ChannelService) GetWorkspaceChannels(workspaceID uuid.UUID) ([]models.Channel, error) {
	return s.db.GetWorkspaceChannels(workspaceID)
}

func (s *ChannelService) Update(channelID uuid.UUID, name string) (*models.Channel, error) {
	channel, err := s.Get(channelID)
	if err != nil {
		return nil, err
	}

	channel.Name = name
	if err := s.db.UpdateChannel(channel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("channel %q already exists in workspace %s", name, channel.WorkspaceID)
		}
		return nil, err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(channel.WorkspaceID), events.Event{
		Type:        events.TypeChannelUpdated,
		WorkspaceID: channel.WorkspaceID.String(),
		ChannelID:   channel.ID.String(),
		Payload:     dto.FromChannel(channel),
	})

	return channel, nil
}

// Delete cascades to the channel's messages and their reactions.
func (s *ChannelService) Delete(channelID uuid.UUID) error {
	channel, err := s.Get(channelID)
	if err != nil {
		return err
	}

	if err := s.db.DeleteChannel(channel.ID); err != nil {
		return err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(channel.WorkspaceID), events.Event{
		Type:        events.TypeChannelDeleted,
		WorkspaceID: channel.WorkspaceID.String(),
		Payload:     channel.ID.String(),
	})

	s.log.Info("channel deleted",
		zap.String("channel_id", channel.ID.String()),
		zap.String("workspace_id", channel.WorkspaceID.String()))

	return nil
}
