package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MaheshMoholkar/slack/internal/database"
	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/models"
)

// testEnv wires every service against an in-memory sqlite store and a
// fresh broadcaster. Each test gets its own database.
type testEnv struct {
	db          *database.Database
	broadcaster *events.Broadcaster

	workspaces    *WorkspaceService
	members       *MemberService
	channels      *ChannelService
	conversations *ConversationService
	messages      *MessageService
	reactions     *ReactionService
	presence      *PresenceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One in-memory sqlite database per connection, so keep one connection.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db := database.NewDatabase(gdb)
	log := zap.NewNop()
	broadcaster := events.NewBroadcaster(log)

	return &testEnv{
		db:            db,
		broadcaster:   broadcaster,
		workspaces:    NewWorkspaceService(db, broadcaster, log),
		members:       NewMemberService(db, broadcaster, log),
		channels:      NewChannelService(db, broadcaster, log),
		conversations: NewConversationService(db, broadcaster, log),
		messages:      NewMessageService(db, broadcaster, log),
		reactions:     NewReactionService(db, broadcaster, log),
		presence:      NewPresenceService(broadcaster, log),
	}
}

func (e *testEnv) seedUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, PasswordHash: "irrelevant"}
	if err := e.db.SaveUser(user); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func (e *testEnv) seedWorkspace(t *testing.T, owner *models.User) *models.Workspace {
	t.Helper()
	workspace, err := e.workspaces.Create("acme", owner.ID)
	if err != nil {
		t.Fatalf("seed workspace: %v", err)
	}
	return workspace
}

func (e *testEnv) memberOf(t *testing.T, workspace *models.Workspace, user *models.User) *models.Member {
	t.Helper()
	member, err := e.members.GetByWorkspaceAndUser(workspace.ID, user.ID)
	if err != nil {
		t.Fatalf("member of %s for %s: %v", workspace.ID, user.Email, err)
	}
	return member
}

func (e *testEnv) generalChannel(t *testing.T, workspace *models.Workspace) *models.Channel {
	t.Helper()
	channels, err := e.channels.GetWorkspaceChannels(workspace.ID)
	if err != nil {
		t.Fatalf("workspace channels: %v", err)
	}
	for i := range channels {
		if channels[i].Name == "general" {
			return &channels[i]
		}
	}
	t.Fatalf("workspace %s has no general channel", workspace.ID)
	return nil
}

func recvEvent(t *testing.T, sub *events.Subscription) events.Event {
	t.Helper()
	select {
	case data, ok := <-sub.C:
		if !ok {
			t.Fatal("subscription closed")
		}
		var event events.Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("no event within 1s")
	}
	return events.Event{}
}

// assertNoEvent relies on Publish delivering synchronously: anything
// published before this call is already buffered.
func assertNoEvent(t *testing.T, sub *events.Subscription) {
	t.Helper()
	select {
	case data := <-sub.C:
		t.Fatalf("unexpected event: %s", data)
	default:
	}
}
