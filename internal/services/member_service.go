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

type MemberService struct {
	db          *database.Database
	broadcaster *events.Broadcaster
	log         *zap.Logger
}

func NewMemberService(db *database.Database, broadcaster *events.Broadcaster, log *zap.Logger) *MemberService {
	return &MemberService{db: db, broadcaster: broadcaster, log: log}
}

func (s *MemberService) Add(workspaceID, userID uuid.UUID, role models.Role) (*models.Member, error) {
	if _, err := s.db.GetWorkspace(workspaceID); err != nil {
		return nil, wrapLookup(err, "workspace %s", workspaceID)
	}
	user, err := s.db.GetUser(userID)
	if err != nil {
		return nil, wrapLookup(err, "user %s", userID)
	}

	member := &models.Member{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
	if err := s.db.CreateMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("user %s is already a member of workspace %s", userID, workspaceID)
		}
		return nil, err
	}
	member.User = *user

	s.broadcaster.Publish(events.WorkspaceTopic(workspaceID), events.Event{
		Type:        events.TypeMemberJoined,
		WorkspaceID: workspaceID.String(),
		Payload:     dto.FromMember(member),
	})

	return member, nil
}

func (s *MemberService) Get(memberID uuid.UUID) (*models.Member, error) {
	member, err := s.db.GetMember(memberID)
	if err != nil {
		return nil, wrapLookup(err, "member %s", memberID)
	}
	return member, nil
}

func (s *MemberService) GetByWorkspaceAndUser(workspaceID, userID uuid.UUID) (*models.Member, error) {
	member, err := s.db.FindMemberByWorkspaceAndUser(workspaceID, userID)
	if err != nil {
		return nil, wrapLookup(err, "member of workspace %s for user %s", workspaceID, userID)
	}
	return member, nil
}

func (s *MemberService) GetWorkspaceAdmins(workspaceID uuid.UUID) ([]models.Member, error) {
	return s.db.GetWorkspaceMembersByRole(workspaceID, models.RoleAdmin)
}

// IsAdmin is a pure read of the member's role; authorization decisions
// belong to the caller.
func (s *MemberService) IsAdmin(memberID uuid.UUID) (bool, error) {
	member, err := s.Get(memberID)
	if err != nil {
		return false, err
	}
	return member.Role == models.RoleAdmin, nil
}

func (s *MemberService) UpdateRole(memberID uuid.UUID, role models.Role) (*models.Member, error) {
	member, err := s.Get(memberID)
	if err != nil {
		return nil, err
	}

	member.Role = role
	if err := s.db.UpdateMember(member); err != nil {
		return nil, err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(member.WorkspaceID), events.Event{
		Type:        events.TypeMemberUpdated,
		WorkspaceID: member.WorkspaceID.String(),
		Payload:     dto.FromMember(member),
	})

	return member, nil
}

func (s *MemberService) Remove(memberID uuid.UUID) error {
	member, err := s.Get(memberID)
	if err != nil {
		return err
	}

	if err := s.db.DeleteMember(member.ID); err != nil {
		return err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(member.WorkspaceID), events.Event{
		Type:        events.TypeMemberLeft,
		WorkspaceID: member.WorkspaceID.String(),
		Payload:     member.ID.String(),
	})

	return nil
}
