package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/models"
)

func TestWorkspaceCreateSeedsOwnerAndGeneral(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "alice", "alice@example.com")

	workspace, err := env.workspaces.Create("acme", owner.ID)
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	if len(workspace.JoinCode) != 6 {
		t.Fatalf("join code %q: want 6 characters", workspace.JoinCode)
	}
	for _, r := range workspace.JoinCode {
		if !strings.ContainsRune(joinCodeChars, r) {
			t.Fatalf("join code %q contains %q", workspace.JoinCode, r)
		}
	}

	members, err := env.workspaces.GetMembers(workspace.ID)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("got %d members, want 1", len(members))
	}
	if members[0].UserID != owner.ID || members[0].Role != models.RoleAdmin {
		t.Fatalf("owner member = %+v, want admin for %s", members[0], owner.ID)
	}

	env.generalChannel(t, workspace)
}

func TestWorkspaceCreateUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.workspaces.Create("acme", uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestWorkspaceJoinByCode(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "alice", "alice@example.com")
	joiner := env.seedUser(t, "bob", "bob@example.com")
	workspace := env.seedWorkspace(t, owner)

	sub := env.broadcaster.Subscribe(events.WorkspaceTopic(workspace.ID))
	defer env.broadcaster.Unsubscribe(sub)

	joined, err := env.workspaces.Join(workspace.JoinCode, joiner.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.ID != workspace.ID {
		t.Fatalf("joined workspace %s, want %s", joined.ID, workspace.ID)
	}

	member := env.memberOf(t, workspace, joiner)
	if member.Role != models.RoleMember {
		t.Fatalf("joiner role = %s, want %s", member.Role, models.RoleMember)
	}

	event := recvEvent(t, sub)
	if event.Type != events.TypeMemberJoined {
		t.Fatalf("event type = %s, want %s", event.Type, events.TypeMemberJoined)
	}

	if _, err := env.workspaces.Join(workspace.JoinCode, joiner.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("second join: got %v, want ErrConflict", err)
	}
	if _, err := env.workspaces.Join("ZZZZZZ", joiner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown code: got %v, want ErrNotFound", err)
	}
}

func TestWorkspaceRegenerateJoinCode(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "alice", "alice@example.com")
	joiner := env.seedUser(t, "bob", "bob@example.com")
	workspace := env.seedWorkspace(t, owner)
	oldCode := workspace.JoinCode

	newCode, err := env.workspaces.RegenerateJoinCode(workspace.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if len(newCode) != 6 {
		t.Fatalf("new code %q: want 6 characters", newCode)
	}

	if _, err := env.workspaces.Join(oldCode, joiner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old code still resolves: %v", err)
	}
	if _, err := env.workspaces.Join(newCode, joiner.ID); err != nil {
		t.Fatalf("join with new code: %v", err)
	}
}

func TestWorkspaceDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "alice", "alice@example.com")
	other := env.seedUser(t, "bob", "bob@example.com")
	workspace := env.seedWorkspace(t, owner)
	ownerMember := env.memberOf(t, workspace, owner)
	otherMember, err := env.members.Add(workspace.ID, other.ID, models.RoleMember)
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	channel := env.generalChannel(t, workspace)

	message, err := env.messages.Create(CreateMessageInput{
		Body:      "hello",
		MemberID:  ownerMember.ID,
		ChannelID: &channel.ID,
	})
	if err != nil {
		t.Fatalf("create message: %v", err)
	}
	if _, err := env.reactions.Add(message.ID, ownerMember.ID, "wave"); err != nil {
		t.Fatalf("add reaction: %v", err)
	}
	if _, err := env.conversations.GetOrCreate(workspace.ID, ownerMember.ID, otherMember.ID); err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	if err := env.workspaces.Delete(workspace.ID); err != nil {
		t.Fatalf("delete workspace: %v", err)
	}

	if _, err := env.workspaces.Get(workspace.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("workspace survived: %v", err)
	}
	if _, err := env.members.Get(ownerMember.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("member survived: %v", err)
	}
	if _, err := env.channels.Get(channel.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("channel survived: %v", err)
	}
	if _, err := env.messages.Get(message.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("message survived: %v", err)
	}
	conversations, err := env.conversations.GetWorkspaceConversations(workspace.ID)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(conversations) != 0 {
		t.Fatalf("got %d conversations, want 0", len(conversations))
	}
}
