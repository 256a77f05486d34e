package database

import (
	"time"
)

// ItemKind distinguishes lost reports from found reports.
type ItemKind string

const (
	ItemLost  ItemKind = "lost"
	ItemFound ItemKind = "found"
)

// Valid reports whether the kind is one of the known values.
func (k ItemKind) Valid() bool {
	return k == ItemLost || k == ItemFound
}

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Phone        string // optional, enables the SMS channel for this user
	CreatedAt    time.Time
}

// Item represents a reported lost or found object. Items are immutable after
// creation except for re-embedding with a newer extractor version.
type Item struct {
	ID          int64
	UserID      int64
	Kind        ItemKind
	Name        string
	Description string
	Location    string
	Contact     string
	ImageKey    string    // key of the stored image in the image store
	Embedding   []float32 // pooled image feature vector
	Model       string    // extractor version tag the embedding was computed with
	Dim         int       // embedding dimensionality
	CreatedAt   time.Time
}

// NotificationStatus tracks delivery state of a match alert.
type NotificationStatus string

const (
	// NotificationSent is set optimistically when the record is persisted;
	// no delivery confirmation is modeled.
	NotificationSent NotificationStatus = "sent"
)

// Notification records a dispatched match alert. Created exactly once per
// accepted match, immutable, retained for history display.
type Notification struct {
	ID          int64
	UserID      int64 // receiving user (owner of the lost item)
	LostItemID  int64
	FoundItemID int64
	Message     string
	Status      NotificationStatus
	SentAt      time.Time
}
