package services

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MaheshMoholkar/slack/internal/database"
	"github.com/MaheshMoholkar/slack/internal/dto"
	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/models"
)

const joinCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newJoinCode() string {
	code := make([]byte, 6)
	for i := range code {
		code[i] = joinCodeChars[rand.Intn(len(joinCodeChars))]
	}
	return string(code)
}

type WorkspaceService struct {
	db          *database.Database
	broadcaster *events.Broadcaster
	log         *zap.Logger
}

func NewWorkspaceService(db *database.Database, broadcaster *events.Broadcaster, log *zap.Logger) *WorkspaceService {
	return &WorkspaceService{db: db, broadcaster: broadcaster, log: log}
}

// Create persists the workspace together with its owner member (ADMIN)
// and the default "general" channel, then announces it.
func (s *WorkspaceService) Create(name string, userID uuid.UUID) (*models.Workspace, error) {
	owner, err := s.db.GetUser(userID)
	if err != nil {
		return nil, wrapLookup(err, "user %s", userID)
	}

	workspace := &models.Workspace{
		Name:     name,
		UserID:   owner.ID,
		JoinCode: newJoinCode(),
	}
	ownerMember := &models.Member{
		UserID: owner.ID,
		Role:   models.RoleAdmin,
	}
	general := &models.Channel{
		Name: "general",
	}

	if err := s.db.CreateWorkspace(workspace, ownerMember, general); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("workspace create for user %s", userID)
		}
		return nil, err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(workspace.ID), events.Event{
		Type:        events.TypeWorkspaceCreated,
		WorkspaceID: workspace.ID.String(),
		Payload:     dto.FromWorkspace(workspace),
	})

	s.log.Info("workspace created",
		zap.String("workspace_id", workspace.ID.String()),
		zap.String("owner_user_id", owner.ID.String()))

	return workspace, nil
}

func (s *WorkspaceService) Get(workspaceID uuid.UUID) (*models.Workspace, error) {
	workspace, err := s.db.GetWorkspace(workspaceID)
	if err != nil {
		return nil, wrapLookup(err, "workspace %s", workspaceID)
	}
	return workspace, nil
}

func (s *WorkspaceService) GetUserWorkspaces(userID uuid.UUID) ([]models.Workspace, error) {
	return s.db.GetUserWorkspaces(userID)
}

func (s *WorkspaceService) GetMembers(workspaceID uuid.UUID) ([]models.Member, error) {
	return s.db.GetWorkspaceMembers(workspaceID)
}

func (s *WorkspaceService) Update(workspaceID uuid.UUID, name string) (*models.Workspace, error) {
	workspace, err := s.Get(workspaceID)
	if err != nil {
		return nil, err
	}

	workspace.Name = name
	if err := s.db.UpdateWorkspace(workspace); err != nil {
		return nil, err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(workspace.ID), events.Event{
		Type:        events.TypeWorkspaceUpdated,
		WorkspaceID: workspace.ID.String(),
		Payload:     dto.FromWorkspace(workspace),
	})

	return workspace, nil
}

// Join adds the user to the workspace matching the join code. An unknown
// code is NotFound; an existing membership is a Conflict.
func (s *WorkspaceService) Join(joinCode string, userID uuid.UUID) (*models.Workspace, error) {
	workspace, err := s.db.FindWorkspaceByJoinCode(joinCode)
	if err != nil {
		return nil, wrapLookup(err, "join code %s", joinCode)
	}

	user, err := s.db.GetUser(userID)
	if err != nil {
		return nil, wrapLookup(err, "user %s", userID)
	}

	member := &models.Member{
		WorkspaceID: workspace.ID,
		UserID:      user.ID,
		Role:        models.RoleMember,
	}
	if err := s.db.CreateMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("user %s is already a member of workspace %s", userID, workspace.ID)
		}
		return nil, err
	}
	member.User = *user

	s.broadcaster.Publish(events.WorkspaceTopic(workspace.ID), events.Event{
		Type:        events.TypeMemberJoined,
		WorkspaceID: workspace.ID.String(),
		Payload:     dto.FromMember(member),
	})

	return workspace, nil
}

// Delete cascades to every entity the workspace owns.
func (s *WorkspaceService) Delete(workspaceID uuid.UUID) error {
	workspace, err := s.Get(workspaceID)
	if err != nil {
		return err
	}

	if err := s.db.DeleteWorkspace(workspace.ID); err != nil {
		return err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(workspace.ID), events.Event{
		Type:        events.TypeWorkspaceDeleted,
		WorkspaceID: workspace.ID.String(),
		Payload:     workspace.ID.String(),
	})

	s.log.Info("workspace deleted", zap.String("workspace_id", workspace.ID.String()))

	return nil
}

func (s *WorkspaceService) RegenerateJoinCode(workspaceID uuid.UUID) (string, error) {
	workspace, err := s.Get(workspaceID)
	if err != nil {
		return "", err
	}

	workspace.JoinCode = newJoinCode()
	if err := s.db.UpdateWorkspace(workspace); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", conflict("join code collision for workspace %s", workspaceID)
		}
		return "", err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(workspace.ID), events.Event{
		Type:        events.TypeWorkspaceUpdated,
		WorkspaceID: workspace.ID.String(),
		Payload:     dto.FromWorkspace(workspace),
	})

	return workspace.JoinCode, nil
}
