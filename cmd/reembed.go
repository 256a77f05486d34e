package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/lost-found/internal/catalog"
	"github.com/kozaktomas/lost-found/internal/config"
	"github.com/kozaktomas/lost-found/internal/database/postgres"
	"github.com/kozaktomas/lost-found/internal/embedding"
	"github.com/kozaktomas/lost-found/internal/match"
	"github.com/kozaktomas/lost-found/internal/storage"
)

var reembedCmd = &cobra.Command{
	Use:   "reembed",
	Short: "Recompute every stored embedding with the current extractor",
	Long: `Re-extract features for every stored item image and update the
embedding and model version tag in the database.

Run this after changing the extractor model. Items whose stored embedding
comes from a different model version are skipped during matching until
they are re-embedded.`,
	RunE: runReembed,
}

func init() {
	rootCmd.AddCommand(reembedCmd)
}

func runReembed(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if err := postgres.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	pool := postgres.GetGlobalPool()
	defer pool.Close()

	items := postgres.NewItemRepository(pool)
	notifications := postgres.NewNotificationRepository(pool)

	images, err := storage.New(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}

	extractor := embedding.NewClient(cfg.Extractor.URL, cfg.Extractor.Model, cfg.Extractor.Dim)
	healthCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := extractor.Health(healthCtx); err != nil {
		return fmt.Errorf("feature extractor at %s is not available: %w", cfg.Extractor.URL, err)
	}

	service := catalog.NewService(items, notifications, images, extractor, match.NewEngine(items, nil), nil)

	total, err := items.Count(context.Background())
	if err != nil {
		return fmt.Errorf("counting items: %w", err)
	}
	if total == 0 {
		fmt.Println("No items to re-embed")
		return nil
	}

	fmt.Printf("Re-embedding %d items with model %s (dim %d)\n", total, cfg.Extractor.Model, cfg.Extractor.Dim)
	bar := progressbar.Default(int64(total))

	updated, visited, err := service.ReembedAll(context.Background(), func(done, totalItems int) {
		_ = bar.Set(done)
	})
	if err != nil {
		return fmt.Errorf("reembed failed: %w", err)
	}

	fmt.Printf("\nDone: %d of %d items re-embedded", updated, visited)
	if skipped := visited - updated; skipped > 0 {
		fmt.Printf(" (%d skipped, see log)", skipped)
	}
	fmt.Println()
	return nil
}
