package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"context"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/kozaktomas/lost-found/internal/database"
)

// ItemRepository provides PostgreSQL-backed item storage with pgvector embeddings.
type ItemRepository struct {
	pool *Pool
}

// NewItemRepository creates a new PostgreSQL item repository.
func NewItemRepository(pool *Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = "id, user_id, kind, name, description, location, contact, image_key, embedding, model, dim, created_at"

// scanItem scans a single item row.
func scanItem(row interface{ Scan(...any) error }) (*database.Item, error) {
	var item database.Item
	var kind string
	var vec pgvector.Vector

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&kind,
		&item.Name,
		&item.Description,
		&item.Location,
		&item.Contact,
		&item.ImageKey,
		&vec,
		&item.Model,
		&item.Dim,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Kind = database.ItemKind(kind)
	item.Embedding = vec.Slice()
	return &item, nil
}

// Create persists a new item and fills in its ID and CreatedAt.
func (r *ItemRepository) Create(ctx context.Context, item *database.Item) error {
	query := `
		INSERT INTO items (user_id, kind, name, description, location, contact, image_key, embedding, model, dim)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		item.UserID,
		string(item.Kind),
		item.Name,
		item.Description,
		item.Location,
		item.Contact,
		item.ImageKey,
		pgvector.NewVector(item.Embedding),
		item.Model,
		item.Dim,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Get retrieves an item by ID, returns nil if not found.
func (r *ItemRepository) Get(ctx context.Context, id int64) (*database.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE id = $1"

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// GetByIDs retrieves multiple items at once, in no particular order.
func (r *ItemRepository) GetByIDs(ctx context.Context, ids []int64) ([]database.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := "SELECT " + itemColumns + " FROM items WHERE id = ANY($1)"
	rows, err := r.pool.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query items by IDs: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListByKind returns all items of the given kind in insertion order.
func (r *ItemRepository) ListByKind(ctx context.Context, kind database.ItemKind) ([]database.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE kind = $1 ORDER BY id"
	rows, err := r.pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query items by kind: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListByUser returns a user's items of the given kind in insertion order.
func (r *ItemRepository) ListByUser(ctx context.Context, userID int64, kind database.ItemKind) ([]database.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE user_id = $1 AND kind = $2 ORDER BY id"
	rows, err := r.pool.Query(ctx, query, userID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query items by user: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// collectItems scans all rows into a slice of items.
func collectItems(rows *sql.Rows) ([]database.Item, error) {
	var items []database.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Count returns the total number of items stored.
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// UpdateEmbedding replaces an item's embedding and extractor version tag.
func (r *ItemRepository) UpdateEmbedding(ctx context.Context, id int64, embedding []float32, model string, dim int) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE items SET embedding = $1, model = $2, dim = $3 WHERE id = $4",
		pgvector.NewVector(embedding), model, dim, id,
	)
	if err != nil {
		return fmt.Errorf("update embedding: %w", err)
	}
	return nil
}

// DeleteAll removes every item. Destructive, used by bulk reset only.
func (r *ItemRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return nil
}
