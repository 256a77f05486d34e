package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/lost-found/internal/database"
)

// NotificationRepository provides PostgreSQL-backed notification storage.
type NotificationRepository struct {
	pool *Pool
}

// NewNotificationRepository creates a new PostgreSQL notification repository.
func NewNotificationRepository(pool *Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create persists a new notification and fills in its ID and SentAt.
func (r *NotificationRepository) Create(ctx context.Context, n *database.Notification) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, lost_item_id, found_item_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sent_at
	`, n.UserID, n.LostItemID, n.FoundItemID, n.Message, string(n.Status)).Scan(&n.ID, &n.SentAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]database.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, lost_item_id, found_item_id, message, status, sent_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY sent_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []database.Notification
	for rows.Next() {
		var n database.Notification
		var status string
		if err := rows.Scan(&n.ID, &n.UserID, &n.LostItemID, &n.FoundItemID, &n.Message, &status, &n.SentAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Status = database.NotificationStatus(status)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return notifications, nil
}

// DeleteAll removes every notification. Destructive, used by bulk reset only.
func (r *NotificationRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}
