package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/models"
)

func (e *testEnv) seedPair(t *testing.T) (*models.Workspace, *models.Member, *models.Member) {
	t.Helper()
	owner := e.seedUser(t, "alice", "alice@example.com")
	other := e.seedUser(t, "bob", "bob@example.com")
	workspace := e.seedWorkspace(t, owner)
	otherMember, err := e.members.Add(workspace.ID, other.ID, models.RoleMember)
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	return workspace, e.memberOf(t, workspace, owner), otherMember
}

func TestConversationResolveOrderIndependent(t *testing.T) {
	env := newTestEnv(t)
	workspace, alice, bob := env.seedPair(t)

	sub := env.broadcaster.Subscribe(events.WorkspaceTopic(workspace.ID))
	defer env.broadcaster.Unsubscribe(sub)

	first, err := env.conversations.GetOrCreate(workspace.ID, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("resolve (a, b): %v", err)
	}
	event := recvEvent(t, sub)
	if event.Type != events.TypeConversationCreated {
		t.Fatalf("event type = %s, want %s", event.Type, events.TypeConversationCreated)
	}

	second, err := env.conversations.GetOrCreate(workspace.ID, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("resolve (b, a): %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("reversed pair resolved to %s, want %s", second.ID, first.ID)
	}
	// The found path is silent.
	assertNoEvent(t, sub)

	conversations, err := env.conversations.GetWorkspaceConversations(workspace.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("got %d conversations, want 1", len(conversations))
	}
}

func TestConversationPreloadsBothMembers(t *testing.T) {
	env := newTestEnv(t)
	workspace, alice, bob := env.seedPair(t)

	conversation, err := env.conversations.GetOrCreate(workspace.ID, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	names := map[string]bool{
		conversation.MemberOne.User.Name: true,
		conversation.MemberTwo.User.Name: true,
	}
	if !names["alice"] || !names["bob"] {
		t.Fatalf("loaded member names %v, want alice and bob", names)
	}
}

func TestConversationRejectsForeignMember(t *testing.T) {
	env := newTestEnv(t)
	workspace, alice, _ := env.seedPair(t)

	stranger := env.seedUser(t, "carol", "carol@example.com")
	otherWorkspace, err := env.workspaces.Create("beta", stranger.ID)
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	foreign := env.memberOf(t, otherWorkspace, stranger)

	if _, err := env.conversations.GetOrCreate(workspace.ID, alice.ID, foreign.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, err := env.conversations.GetOrCreate(workspace.ID, alice.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown member: got %v, want ErrNotFound", err)
	}
}

func TestConversationConcurrentResolve(t *testing.T) {
	env := newTestEnv(t)
	workspace, alice, bob := env.seedPair(t)

	const resolvers = 8
	ids := make(chan uuid.UUID, resolvers)
	var wg sync.WaitGroup
	for i := 0; i < resolvers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := alice.ID, bob.ID
			if i%2 == 1 {
				a, b = b, a
			}
			conversation, err := env.conversations.GetOrCreate(workspace.ID, a, b)
			if err != nil {
				t.Errorf("resolve: %v", err)
				return
			}
			ids <- conversation.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	var winner uuid.UUID
	for id := range ids {
		if winner == uuid.Nil {
			winner = id
		}
		if id != winner {
			t.Fatalf("resolved to both %s and %s", winner, id)
		}
	}

	conversations, err := env.conversations.GetWorkspaceConversations(workspace.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("got %d conversations, want 1", len(conversations))
	}
}

func TestConversationDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	workspace, alice, bob := env.seedPair(t)

	conversation, err := env.conversations.GetOrCreate(workspace.ID, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	message, err := env.messages.Create(CreateMessageInput{
		Body:           "hi",
		MemberID:       alice.ID,
		ConversationID: &conversation.ID,
	})
	if err != nil {
		t.Fatalf("create message: %v", err)
	}
	if _, err := env.reactions.Add(message.ID, bob.ID, "wave"); err != nil {
		t.Fatalf("add reaction: %v", err)
	}

	if err := env.conversations.Delete(conversation.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := env.conversations.Get(conversation.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("conversation survived: %v", err)
	}
	if _, err := env.messages.Get(message.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("message survived: %v", err)
	}

	// A fresh resolve for the same pair starts a new conversation.
	replacement, err := env.conversations.GetOrCreate(workspace.ID, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("re-resolve: %v", err)
	}
	if replacement.ID == conversation.ID {
		t.Fatal("re-resolve returned the deleted conversation")
	}
}
