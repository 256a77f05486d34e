package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/lost-found/internal/catalog"
	"github.com/kozaktomas/lost-found/internal/config"
	"github.com/kozaktomas/lost-found/internal/database/postgres"
	"github.com/kozaktomas/lost-found/internal/match"
	"github.com/kozaktomas/lost-found/internal/storage"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every item, notification and stored image",
	Long: `Wipe the full catalog: all lost and found items, all match
notifications and all stored images. User accounts are kept.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().Bool("force", false, "Skip the safety check")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !mustGetBool(cmd, "force") {
		return errors.New("refusing to wipe the catalog without --force")
	}

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

	// The reset path never touches the extractor or the match engine.
	service := catalog.NewService(items, notifications, images, nil, match.NewEngine(items, nil), nil)

	if err := service.Reset(context.Background()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	fmt.Println("Catalog wiped: items, notifications and images deleted")
	return nil
}
