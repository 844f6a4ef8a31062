package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/models"
)

func (e *testEnv) seedChannelMessage(t *testing.T) (*models.Workspace, *models.Member, *models.Member, *models.Message) {
	t.Helper()
	workspace, alice, bob := e.seedPair(t)
	channel := e.generalChannel(t, workspace)
	message, err := e.messages.Create(CreateMessageInput{
		Body:      "hello",
		MemberID:  alice.ID,
		ChannelID: &channel.ID,
	})
	if err != nil {
		t.Fatalf("seed message: %v", err)
	}
	return workspace, alice, bob, message
}

func TestReactionAddIdempotent(t *testing.T) {
	env := newTestEnv(t)
	workspace, _, bob, message := env.seedChannelMessage(t)

	sub := env.broadcaster.Subscribe(events.ChannelTopic(workspace.ID, *message.ChannelID))
	defer env.broadcaster.Unsubscribe(sub)

	first, err := env.reactions.Add(message.ID, bob.ID, "thumbsup")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	again, err := env.reactions.Add(message.ID, bob.ID, "thumbsup")
	if err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("duplicate add created %s, want %s", again.ID, first.ID)
	}

	reactions, err := env.reactions.List(message.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reactions) != 1 {
		t.Fatalf("got %d reactions, want 1", len(reactions))
	}

	// The event is re-broadcast on every add, duplicate or not.
	for i := 0; i < 2; i++ {
		event := recvEvent(t, sub)
		if event.Type != events.TypeReactionAdded {
			t.Fatalf("event type = %s, want %s", event.Type, events.TypeReactionAdded)
		}
	}
}

func TestReactionDistinctValuesInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	_, alice, bob, message := env.seedChannelMessage(t)

	for _, add := range []struct {
		member *models.Member
		value  string
	}{
		{bob, "thumbsup"},
		{alice, "thumbsup"},
		{bob, "eyes"},
	} {
		if _, err := env.reactions.Add(message.ID, add.member.ID, add.value); err != nil {
			t.Fatalf("add %s: %v", add.value, err)
		}
		pause()
	}

	reactions, err := env.reactions.List(message.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reactions) != 3 {
		t.Fatalf("got %d reactions, want 3", len(reactions))
	}
	for i, want := range []string{"thumbsup", "thumbsup", "eyes"} {
		if reactions[i].Value != want {
			t.Fatalf("reactions[%d].Value = %q, want %q", i, reactions[i].Value, want)
		}
	}
	if reactions[0].Member.User.Name != "bob" || reactions[1].Member.User.Name != "alice" {
		t.Fatalf("insertion order lost: %q then %q", reactions[0].Member.User.Name, reactions[1].Member.User.Name)
	}
}

func TestReactionRemove(t *testing.T) {
	env := newTestEnv(t)
	workspace, _, bob, message := env.seedChannelMessage(t)

	if _, err := env.reactions.Add(message.ID, bob.ID, "thumbsup"); err != nil {
		t.Fatalf("add: %v", err)
	}

	sub := env.broadcaster.Subscribe(events.ChannelTopic(workspace.ID, *message.ChannelID))
	defer env.broadcaster.Unsubscribe(sub)

	if err := env.reactions.Remove(message.ID, bob.ID, "thumbsup"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	event := recvEvent(t, sub)
	if event.Type != events.TypeReactionRemoved {
		t.Fatalf("event type = %s, want %s", event.Type, events.TypeReactionRemoved)
	}
	payload, ok := event.Payload.(map[string]any)
	if !ok {
		t.Fatalf("payload = %T, want object", event.Payload)
	}
	if payload["value"] != "thumbsup" || payload["messageId"] != message.ID.String() {
		t.Fatalf("payload = %v", payload)
	}

	reactions, err := env.reactions.List(message.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reactions) != 0 {
		t.Fatalf("got %d reactions, want 0", len(reactions))
	}

	// Removing an absent triple is a no-op, not an error.
	if err := env.reactions.Remove(message.ID, bob.ID, "thumbsup"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestReactionUnknownMessage(t *testing.T) {
	env := newTestEnv(t)
	_, _, bob, _ := env.seedChannelMessage(t)

	if _, err := env.reactions.Add(uuid.New(), bob.ID, "thumbsup"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("add: got %v, want ErrNotFound", err)
	}
	if err := env.reactions.Remove(uuid.New(), bob.ID, "thumbsup"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove: got %v, want ErrNotFound", err)
	}
	if _, err := env.reactions.List(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("list: got %v, want ErrNotFound", err)
	}
}

func TestReactionConcurrentAdd(t *testing.T) {
	env := newTestEnv(t)
	_, _, bob, message := env.seedChannelMessage(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.reactions.Add(message.ID, bob.ID, "thumbsup"); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	wg.Wait()

	reactions, err := env.reactions.List(message.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reactions) != 1 {
		t.Fatalf("got %d reactions, want 1", len(reactions))
	}
}
