// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kozaktomas/lost-found/internal/database"
)

// MockItemStore is an in-memory implementation of database.ItemWriter.
// Items are kept in insertion order to mirror the catalog scan contract.
type MockItemStore struct {
	mu     sync.RWMutex
	items  []database.Item
	nextID int64

	// Error injection
	GetError    error
	ListError   error
	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockItemStore creates a new mock item store.
func NewMockItemStore() *MockItemStore {
	return &MockItemStore{nextID: 1}
}

// Create persists a new item and fills in its ID and CreatedAt.
func (m *MockItemStore) Create(ctx context.Context, item *database.Item) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextID
	m.nextID++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	m.items = append(m.items, *item)
	return nil
}

// Get retrieves an item by ID.
func (m *MockItemStore) Get(ctx context.Context, id int64) (*database.Item, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.items {
		if m.items[i].ID == id {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

// GetByIDs retrieves multiple items at once.
func (m *MockItemStore) GetByIDs(ctx context.Context, ids []int64) ([]database.Item, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	idSet := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var results []database.Item
	for _, item := range m.items {
		if _, ok := idSet[item.ID]; ok {
			results = append(results, item)
		}
	}
	return results, nil
}

// ListByKind returns all items of the given kind in insertion order.
func (m *MockItemStore) ListByKind(ctx context.Context, kind database.ItemKind) ([]database.Item, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var results []database.Item
	for _, item := range m.items {
		if item.Kind == kind {
			results = append(results, item)
		}
	}
	return results, nil
}

// ListByUser returns a user's items of the given kind in insertion order.
func (m *MockItemStore) ListByUser(ctx context.Context, userID int64, kind database.ItemKind) ([]database.Item, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var results []database.Item
	for _, item := range m.items {
		if item.UserID == userID && item.Kind == kind {
			results = append(results, item)
		}
	}
	return results, nil
}

// Count returns the total number of items stored.
func (m *MockItemStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}

// UpdateEmbedding replaces an item's embedding and extractor version tag.
func (m *MockItemStore) UpdateEmbedding(ctx context.Context, id int64, embedding []float32, model string, dim int) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Embedding = embedding
			m.items[i].Model = model
			m.items[i].Dim = dim
			return nil
		}
	}
	return nil
}

// DeleteAll removes every item.
func (m *MockItemStore) DeleteAll(ctx context.Context) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

// MockUserStore is an in-memory implementation of database.UserWriter.
type MockUserStore struct {
	mu     sync.RWMutex
	users  map[int64]*database.User
	nextID int64

	// Error injection
	GetError    error
	CreateError error
}

// NewMockUserStore creates a new mock user store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[int64]*database.User), nextID: 1}
}

// AddUser adds a user to the mock store with an assigned ID.
func (m *MockUserStore) AddUser(user database.User) database.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	} else if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	m.users[user.ID] = &user
	return user
}

// Get retrieves a user by ID.
func (m *MockUserStore) Get(ctx context.Context, id int64) (*database.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

// GetByEmail retrieves a user by email.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*database.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, nil
}

// Exists checks whether a username or email is already taken.
func (m *MockUserStore) Exists(ctx context.Context, username, email string) (bool, error) {
	if m.GetError != nil {
		return false, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Create persists a new user and fills in its ID.
func (m *MockUserStore) Create(ctx context.Context, user *database.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.nextID
	m.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	u := *user
	m.users[user.ID] = &u
	return nil
}

// MockNotificationStore is an in-memory implementation of database.NotificationWriter.
type MockNotificationStore struct {
	mu            sync.RWMutex
	notifications []database.Notification
	nextID        int64

	// Error injection
	CreateError error
	ListError   error
	DeleteError error
}

// NewMockNotificationStore creates a new mock notification store.
func NewMockNotificationStore() *MockNotificationStore {
	return &MockNotificationStore{nextID: 1}
}

// Create persists a new notification and fills in its ID and SentAt.
func (m *MockNotificationStore) Create(ctx context.Context, n *database.Notification) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.nextID
	m.nextID++
	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (m *MockNotificationStore) ListByUser(ctx context.Context, userID int64) ([]database.Notification, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var results []database.Notification
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].UserID == userID {
			results = append(results, m.notifications[i])
		}
	}
	return results, nil
}

// All returns every stored notification in insertion order, for test assertions.
func (m *MockNotificationStore) All() []database.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]database.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// DeleteAll removes every notification.
func (m *MockNotificationStore) DeleteAll(ctx context.Context) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = nil
	return nil
}
