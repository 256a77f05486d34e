package match

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kozaktomas/lost-found/internal/database"
)

// Candidate pairs a lost item with its similarity score against a found
// submission. Candidates live only for the duration of one submission.
type Candidate struct {
	Lost  database.Item
	Score float64
}

// Notifier dispatches a match alert to the lost item's owner. Implementations
// must never fail into the match loop; delivery problems are theirs to log.
type Notifier interface {
	Notify(ctx context.Context, lost, found database.Item, score float64)
}

// Engine coordinates scoring a found item against the whole lost catalog.
type Engine struct {
	items    database.ItemReader
	notifier Notifier
}

// NewEngine creates a match engine. The notifier may be nil, in which case
// matches are returned without dispatching alerts.
func NewEngine(items database.ItemReader, notifier Notifier) *Engine {
	return &Engine{items: items, notifier: notifier}
}

// FindMatches linearly scans every stored lost item, scores each against the
// found item's embedding, and keeps those the threshold policy accepts.
// Result order follows catalog insertion order; no ranking by score.
// Exactly one notification is dispatched per accepted match before the call
// returns. Notification is best-effort; matching is authoritative.
func (e *Engine) FindMatches(ctx context.Context, found database.Item) ([]Candidate, error) {
	lost, err := e.items.ListByKind(ctx, database.ItemLost)
	if err != nil {
		return nil, fmt.Errorf("list lost items: %w", err)
	}

	matches := []Candidate{}
	for _, li := range lost {
		// Embeddings from a different extractor version are not comparable.
		if li.Model != found.Model {
			log.Printf("skipping item %d: embedding version %q does not match %q (run reembed)",
				li.ID, li.Model, found.Model)
			continue
		}

		score, err := Score(found.Embedding, li.Embedding)
		if err != nil {
			if errors.Is(err, ErrDimensionMismatch) {
				log.Printf("skipping item %d: %v (stored embedding corrupted?)", li.ID, err)
				continue
			}
			return nil, fmt.Errorf("score item %d: %w", li.ID, err)
		}

		if !IsMatch(score) {
			continue
		}

		matches = append(matches, Candidate{Lost: li, Score: score})
		if e.notifier != nil {
			e.notifier.Notify(ctx, li, found, score)
		}
	}

	return matches, nil
}
