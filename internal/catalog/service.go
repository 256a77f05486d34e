// Package catalog implements the item submission and matching operations the
// web layer and CLI build on.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kozaktomas/lost-found/internal/ai"
	"github.com/kozaktomas/lost-found/internal/database"
	"github.com/kozaktomas/lost-found/internal/embedding"
	"github.com/kozaktomas/lost-found/internal/match"
	"github.com/kozaktomas/lost-found/internal/storage"
)

// ItemReport carries the free-text metadata of a submission.
type ItemReport struct {
	Name        string
	Description string
	Location    string
	Contact     string
}

// Service wires the feature extractor, image store, item store and match
// engine into the operations exposed to the application.
type Service struct {
	items         database.ItemWriter
	notifications database.NotificationWriter
	images        storage.ImageStore
	extractor     embedding.Extractor
	engine        *match.Engine
	describer     ai.Provider // nil when description generation is disabled
}

// NewService creates the catalog service. The describer may be nil.
func NewService(
	items database.ItemWriter,
	notifications database.NotificationWriter,
	images storage.ImageStore,
	extractor embedding.Extractor,
	engine *match.Engine,
	describer ai.Provider,
) *Service {
	return &Service{
		items:         items,
		notifications: notifications,
		images:        images,
		extractor:     extractor,
		engine:        engine,
		describer:     describer,
	}
}

// ReportItem extracts features from the image, stores the image and persists
// the item. The embedding is computed synchronously before anything is
// persisted, so extraction failures reject the submission cleanly.
func (s *Service) ReportItem(ctx context.Context, userID int64, kind database.ItemKind, report ItemReport, image []byte, imageName string) (*database.Item, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid item kind: %s", kind)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty upload", embedding.ErrInvalidImage)
	}

	emb, err := s.extractor.Extract(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("extract features: %w", err)
	}

	if report.Description == "" && s.describer != nil {
		if desc, err := s.describer.DescribeItem(ctx, image, report.Name); err != nil {
			log.Printf("description generation failed, continuing without: %v", err)
		} else {
			report.Description = desc
		}
	}

	key, err := s.images.Save(ctx, image, imageName)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	item := &database.Item{
		UserID:      userID,
		Kind:        kind,
		Name:        report.Name,
		Description: report.Description,
		Location:    report.Location,
		Contact:     report.Contact,
		ImageKey:    key,
		Embedding:   emb,
		Model:       s.extractor.Version(),
		Dim:         len(emb),
	}
	if err := s.items.Create(ctx, item); err != nil {
		if rmErr := s.images.Remove(ctx, key); rmErr != nil {
			log.Printf("failed to clean up image %s after item create failure: %v", key, rmErr)
		}
		return nil, fmt.Errorf("persist item: %w", err)
	}

	return item, nil
}

// SubmitFoundAndMatch reports a found item and scans the lost catalog for
// likely matches, notifying each matched item's owner before returning.
func (s *Service) SubmitFoundAndMatch(ctx context.Context, userID int64, report ItemReport, image []byte, imageName string) (*database.Item, []match.Candidate, error) {
	item, err := s.ReportItem(ctx, userID, database.ItemFound, report, image, imageName)
	if err != nil {
		return nil, nil, err
	}

	matches, err := s.engine.FindMatches(ctx, *item)
	if err != nil {
		// The found item is already persisted; surface the scan failure
		// without pretending the submission failed.
		return item, nil, fmt.Errorf("match scan: %w", err)
	}

	return item, matches, nil
}

// Reset wipes all items, notifications and stored images. Destructive, no
// confirmation, intended for test and demo environments only.
func (s *Service) Reset(ctx context.Context) error {
	var errs []error
	if err := s.notifications.DeleteAll(ctx); err != nil {
		errs = append(errs, fmt.Errorf("delete notifications: %w", err))
	}
	if err := s.items.DeleteAll(ctx); err != nil {
		errs = append(errs, fmt.Errorf("delete items: %w", err))
	}
	if err := s.images.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear images: %w", err))
	}
	return errors.Join(errs...)
}

// ReembedAll recomputes every stored embedding with the current extractor
// version. Items whose image can no longer be read or embedded are skipped
// and logged. Returns the number of items updated and the total visited.
func (s *Service) ReembedAll(ctx context.Context, progress func(done, total int)) (int, int, error) {
	var all []database.Item
	for _, kind := range []database.ItemKind{database.ItemLost, database.ItemFound} {
		items, err := s.items.ListByKind(ctx, kind)
		if err != nil {
			return 0, 0, fmt.Errorf("list %s items: %w", kind, err)
		}
		all = append(all, items...)
	}

	updated := 0
	for i, item := range all {
		if err := s.reembedItem(ctx, item); err != nil {
			log.Printf("reembed item %d: %v", item.ID, err)
		} else {
			updated++
		}
		if progress != nil {
			progress(i+1, len(all))
		}
	}

	return updated, len(all), nil
}

func (s *Service) reembedItem(ctx context.Context, item database.Item) error {
	image, err := s.images.Read(ctx, item.ImageKey)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	emb, err := s.extractor.Extract(ctx, image)
	if err != nil {
		return fmt.Errorf("extract features: %w", err)
	}
	if err := s.items.UpdateEmbedding(ctx, item.ID, emb, s.extractor.Version(), len(emb)); err != nil {
		return fmt.Errorf("update embedding: %w", err)
	}
	return nil
}
