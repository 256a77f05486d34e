// Package notify dispatches match alerts to lost item owners.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/kozaktomas/lost-found/internal/database"
)

// MailSender delivers an email alert.
type MailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SMSSender delivers a text message alert.
type SMSSender interface {
	Send(ctx context.Context, recipient, body string) error
}

// Dispatcher composes and delivers match alerts. Channel failures are logged
// and swallowed; Notify never interrupts the caller's control flow.
type Dispatcher struct {
	users         database.UserReader
	notifications database.NotificationWriter
	mail          MailSender // nil when the email channel is not configured
	sms           SMSSender  // nil when the SMS channel is not configured
	templates     *Templates
}

// NewDispatcher creates a dispatcher. Either sender may be nil to disable
// that channel.
func NewDispatcher(
	users database.UserReader,
	notifications database.NotificationWriter,
	mail MailSender,
	sms SMSSender,
	templates *Templates,
) *Dispatcher {
	return &Dispatcher{
		users:         users,
		notifications: notifications,
		mail:          mail,
		sms:           sms,
		templates:     templates,
	}
}

// Notify resolves the lost item's owner, persists a notification record and
// attempts delivery on each configured channel independently. A failure on
// one channel does not block the other and nothing propagates to the caller.
func (d *Dispatcher) Notify(ctx context.Context, lost, found database.Item, score float64) {
	owner, err := d.users.Get(ctx, lost.UserID)
	if err != nil {
		log.Printf("notify: failed to resolve owner of item %d: %v", lost.ID, err)
		return
	}
	if owner == nil {
		// Orphaned item; nothing to notify, no record created.
		log.Printf("notify: item %d has no resolvable owner, skipping", lost.ID)
		return
	}

	data := MessageData{
		Username:      owner.Username,
		LostName:      lost.Name,
		LostLocation:  lost.Location,
		FoundName:     found.Name,
		FoundLocation: found.Location,
		FoundContact:  found.Contact,
		Score:         fmt.Sprintf("%.3f", score),
	}

	message, err := d.templates.SMSBody(data)
	if err != nil {
		log.Printf("notify: failed to render message for item %d: %v", lost.ID, err)
		return
	}

	// Status is set optimistically; no delivery confirmation is modeled.
	record := &database.Notification{
		UserID:      owner.ID,
		LostItemID:  lost.ID,
		FoundItemID: found.ID,
		Message:     message,
		Status:      database.NotificationSent,
	}
	if err := d.notifications.Create(ctx, record); err != nil {
		log.Printf("notify: failed to persist notification for item %d: %v", lost.ID, err)
		// Still attempt delivery; the alert is worth more than the record.
	}

	if d.mail != nil && owner.Email != "" {
		d.sendEmail(ctx, owner.Email, data)
	}
	if d.sms != nil && owner.Phone != "" {
		if err := d.sms.Send(ctx, owner.Phone, message); err != nil {
			log.Printf("notify: SMS to %s failed: %v", owner.Username, err)
		}
	}
}

func (d *Dispatcher) sendEmail(ctx context.Context, recipient string, data MessageData) {
	subject, err := d.templates.EmailSubject(data)
	if err != nil {
		log.Printf("notify: failed to render email subject: %v", err)
		return
	}
	body, err := d.templates.EmailBody(data)
	if err != nil {
		log.Printf("notify: failed to render email body: %v", err)
		return
	}
	if err := d.mail.Send(ctx, recipient, subject, body); err != nil {
		log.Printf("notify: email to %s failed: %v", recipient, err)
	}
}
