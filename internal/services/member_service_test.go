package services

import (
	"errors"
	"testing"

	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/models"
)

func TestMemberAddOncePerWorkspace(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "alice", "alice@example.com")
	other := env.seedUser(t, "bob", "bob@example.com")
	workspace := env.seedWorkspace(t, owner)

	member, err := env.members.Add(workspace.ID, other.ID, models.RoleMember)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if member.User.Name != "bob" {
		t.Fatalf("user not loaded: %+v", member)
	}

	if _, err := env.members.Add(workspace.ID, other.ID, models.RoleAdmin); !errors.Is(err, ErrConflict) {
		t.Fatalf("second add: got %v, want ErrConflict", err)
	}
}

func TestMemberRoleLifecycle(t *testing.T) {
	env := newTestEnv(t)
	workspace, alice, bob := env.seedPair(t)

	admin, err := env.members.IsAdmin(alice.ID)
	if err != nil {
		t.Fatalf("is admin: %v", err)
	}
	if !admin {
		t.Fatal("workspace owner is not admin")
	}
	admin, err = env.members.IsAdmin(bob.ID)
	if err != nil {
		t.Fatalf("is admin: %v", err)
	}
	if admin {
		t.Fatal("plain member reported as admin")
	}

	sub := env.broadcaster.Subscribe(events.WorkspaceTopic(workspace.ID))
	defer env.broadcaster.Unsubscribe(sub)

	if _, err := env.members.UpdateRole(bob.ID, models.RoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}
	event := recvEvent(t, sub)
	if event.Type != events.TypeMemberUpdated {
		t.Fatalf("event type = %s, want %s", event.Type, events.TypeMemberUpdated)
	}

	admins, err := env.members.GetWorkspaceAdmins(workspace.ID)
	if err != nil {
		t.Fatalf("admins: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("got %d admins, want 2", len(admins))
	}

	if err := env.members.Remove(bob.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	event = recvEvent(t, sub)
	if event.Type != events.TypeMemberLeft {
		t.Fatalf("event type = %s, want %s", event.Type, events.TypeMemberLeft)
	}
	if id, ok := event.Payload.(string); !ok || id != bob.ID.String() {
		t.Fatalf("payload = %v, want removed member id", event.Payload)
	}
	if _, err := env.members.Get(bob.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("member survived: %v", err)
	}
}
