package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kozaktomas/lost-found/internal/database"
	"github.com/kozaktomas/lost-found/internal/database/mock"
)

// fakeMailSender records sends and optionally fails.
type fakeMailSender struct {
	sent []struct{ recipient, subject, body string }
	err  error
}

func (f *fakeMailSender) Send(ctx context.Context, recipient, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, struct{ recipient, subject, body string }{recipient, subject, body})
	return nil
}

// fakeSMSSender records sends and optionally fails.
type fakeSMSSender struct {
	sent []struct{ recipient, body string }
	err  error
}

func (f *fakeSMSSender) Send(ctx context.Context, recipient, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, struct{ recipient, body string }{recipient, body})
	return nil
}

func mustTemplates(t *testing.T) *Templates {
	t.Helper()
	templates, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	return templates
}

func testItems() (lost, found database.Item) {
	lost = database.Item{
		ID:       1,
		UserID:   7,
		Kind:     database.ItemLost,
		Name:     "black wallet",
		Location: "Main Station",
	}
	found = database.Item{
		ID:       2,
		UserID:   8,
		Kind:     database.ItemFound,
		Name:     "dark wallet",
		Location: "Platform 4",
		Contact:  "finder@example.com",
	}
	return lost, found
}

func TestNotifyBothChannels(t *testing.T) {
	users := mock.NewMockUserStore()
	owner := users.AddUser(database.User{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Phone:    "+15550001111",
	})
	notifications := mock.NewMockNotificationStore()
	mailSender := &fakeMailSender{}
	smsSender := &fakeSMSSender{}

	d := NewDispatcher(users, notifications, mailSender, smsSender, mustTemplates(t))
	lost, found := testItems()

	d.Notify(context.Background(), lost, found, 0.87345)

	records := notifications.All()
	if len(records) != 1 {
		t.Fatalf("expected 1 notification record, got %d", len(records))
	}
	n := records[0]
	if n.UserID != owner.ID || n.LostItemID != lost.ID || n.FoundItemID != found.ID {
		t.Errorf("notification references wrong: %+v", n)
	}
	if n.Status != database.NotificationSent {
		t.Errorf("expected status 'sent', got '%s'", n.Status)
	}
	// Score rounded to 3 decimal places.
	if !strings.Contains(n.Message, "0.873") {
		t.Errorf("message should contain rounded score 0.873: %s", n.Message)
	}

	if len(mailSender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailSender.sent))
	}
	if mailSender.sent[0].recipient != "alice@example.com" {
		t.Errorf("email sent to wrong recipient: %s", mailSender.sent[0].recipient)
	}
	if !strings.Contains(mailSender.sent[0].body, "black wallet") {
		t.Errorf("email body missing lost item name: %s", mailSender.sent[0].body)
	}

	if len(smsSender.sent) != 1 {
		t.Fatalf("expected 1 SMS, got %d", len(smsSender.sent))
	}
	if smsSender.sent[0].recipient != "+15550001111" {
		t.Errorf("SMS sent to wrong recipient: %s", smsSender.sent[0].recipient)
	}
}

func TestNotifyMailFailsSMSSucceeds(t *testing.T) {
	users := mock.NewMockUserStore()
	users.AddUser(database.User{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Phone:    "+15550001111",
	})
	notifications := mock.NewMockNotificationStore()
	mailSender := &fakeMailSender{err: errors.New("smtp timeout")}
	smsSender := &fakeSMSSender{}

	d := NewDispatcher(users, notifications, mailSender, smsSender, mustTemplates(t))
	lost, found := testItems()

	// Must not panic or propagate anything.
	d.Notify(context.Background(), lost, found, 0.9)

	records := notifications.All()
	if len(records) != 1 {
		t.Fatalf("expected notification record despite mail failure, got %d", len(records))
	}
	if records[0].Status != database.NotificationSent {
		t.Errorf("status should stay 'sent', got '%s'", records[0].Status)
	}
	if len(smsSender.sent) != 1 {
		t.Errorf("SMS channel should be unaffected by mail failure, got %d sends", len(smsSender.sent))
	}
}

func TestNotifyUnresolvableOwner(t *testing.T) {
	users := mock.NewMockUserStore() // empty: owner cannot be resolved
	notifications := mock.NewMockNotificationStore()
	mailSender := &fakeMailSender{}

	d := NewDispatcher(users, notifications, mailSender, nil, mustTemplates(t))
	lost, found := testItems()

	d.Notify(context.Background(), lost, found, 0.9)

	if len(notifications.All()) != 0 {
		t.Error("no notification record should be created for an unresolvable owner")
	}
	if len(mailSender.sent) != 0 {
		t.Error("no delivery should be attempted for an unresolvable owner")
	}
}

func TestNotifyChannelsDisabled(t *testing.T) {
	users := mock.NewMockUserStore()
	users.AddUser(database.User{ID: 7, Username: "alice", Email: "alice@example.com"})
	notifications := mock.NewMockNotificationStore()

	d := NewDispatcher(users, notifications, nil, nil, mustTemplates(t))
	lost, found := testItems()

	d.Notify(context.Background(), lost, found, 0.8)

	// Record persisted even with zero delivery channels.
	if len(notifications.All()) != 1 {
		t.Errorf("expected notification record, got %d", len(notifications.All()))
	}
}

func TestNotifySkipsMissingContactDetails(t *testing.T) {
	users := mock.NewMockUserStore()
	users.AddUser(database.User{ID: 7, Username: "alice"}) // no email, no phone
	notifications := mock.NewMockNotificationStore()
	mailSender := &fakeMailSender{}
	smsSender := &fakeSMSSender{}

	d := NewDispatcher(users, notifications, mailSender, smsSender, mustTemplates(t))
	lost, found := testItems()

	d.Notify(context.Background(), lost, found, 0.8)

	if len(mailSender.sent) != 0 {
		t.Error("no email should be sent without an address")
	}
	if len(smsSender.sent) != 0 {
		t.Error("no SMS should be sent without a phone number")
	}
	if len(notifications.All()) != 1 {
		t.Error("record should still be persisted")
	}
}
