package database

import (
	"context"
)

// ItemReader provides read-only access to reported items.
type ItemReader interface {
	// Get retrieves an item by ID, returns nil if not found
	Get(ctx context.Context, id int64) (*Item, error)
	// GetByIDs retrieves multiple items at once, in no particular order
	GetByIDs(ctx context.Context, ids []int64) ([]Item, error)
	// ListByKind returns all items of the given kind in insertion order
	ListByKind(ctx context.Context, kind ItemKind) ([]Item, error)
	// ListByUser returns a user's items of the given kind in insertion order
	ListByUser(ctx context.Context, userID int64, kind ItemKind) ([]Item, error)
	// Count returns the total number of items stored
	Count(ctx context.Context) (int, error)
}

// ItemWriter provides write access to reported items.
type ItemWriter interface {
	ItemReader

	// Create persists a new item and fills in its ID and CreatedAt
	Create(ctx context.Context, item *Item) error
	// UpdateEmbedding replaces an item's embedding and extractor version tag
	UpdateEmbedding(ctx context.Context, id int64, embedding []float32, model string, dim int) error
	// DeleteAll removes every item. Destructive, used by bulk reset only.
	DeleteAll(ctx context.Context) error
}

// UserReader provides read-only access to user accounts.
type UserReader interface {
	// Get retrieves a user by ID, returns nil if not found
	Get(ctx context.Context, id int64) (*User, error)
	// GetByEmail retrieves a user by email, returns nil if not found
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Exists checks whether a username or email is already taken
	Exists(ctx context.Context, username, email string) (bool, error)
}

// UserWriter provides write access to user accounts.
type UserWriter interface {
	UserReader

	// Create persists a new user and fills in its ID and CreatedAt
	Create(ctx context.Context, user *User) error
}

// NotificationWriter provides access to match alert records.
type NotificationWriter interface {
	// Create persists a new notification and fills in its ID and SentAt
	Create(ctx context.Context, n *Notification) error
	// ListByUser returns a user's notifications, newest first
	ListByUser(ctx context.Context, userID int64) ([]Notification, error)
	// DeleteAll removes every notification. Destructive, used by bulk reset only.
	DeleteAll(ctx context.Context) error
}
