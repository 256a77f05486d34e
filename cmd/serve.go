package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/lost-found/internal/ai"
	"github.com/kozaktomas/lost-found/internal/catalog"
	"github.com/kozaktomas/lost-found/internal/config"
	"github.com/kozaktomas/lost-found/internal/database/postgres"
	"github.com/kozaktomas/lost-found/internal/embedding"
	"github.com/kozaktomas/lost-found/internal/match"
	"github.com/kozaktomas/lost-found/internal/notify"
	"github.com/kozaktomas/lost-found/internal/storage"
	"github.com/kozaktomas/lost-found/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Lost Found web server.
The server accepts lost item reports and found item submissions, matches
them by image similarity, and dispatches match alerts to item owners.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().String("session-secret", "", "Secret for signing session cookies")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")
	sessionSecret := mustGetString(cmd, "session-secret")

	if sessionSecret == "" {
		sessionSecret = os.Getenv("WEB_SESSION_SECRET")
	}
	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host, sessionSecret
}

// buildNotifier wires the alert dispatcher from whatever channels are configured.
func buildNotifier(cfg *config.Config, users *postgres.UserRepository, notifications *postgres.NotificationRepository) (*notify.Dispatcher, error) {
	templates, err := notify.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("loading notification templates: %w", err)
	}

	var mail notify.MailSender
	if cfg.Mail.Enabled() {
		sender, err := notify.NewSMTPSender(&cfg.Mail)
		if err != nil {
			return nil, fmt.Errorf("configuring SMTP sender: %w", err)
		}
		mail = sender
		fmt.Printf("Email alerts enabled via %s\n", cfg.Mail.Host)
	} else {
		fmt.Println("Email alerts disabled (MAIL_HOST not set)")
	}

	var sms notify.SMSSender
	if cfg.SMS.Enabled() {
		sms = notify.NewTwilioSender(&cfg.SMS)
		fmt.Println("SMS alerts enabled via Twilio")
	} else {
		fmt.Println("SMS alerts disabled (Twilio credentials not set)")
	}

	return notify.NewDispatcher(users, notifications, mail, sms, templates), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	fmt.Printf("Connecting to PostgreSQL database...\n")
	if err := postgres.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}

	pool := postgres.GetGlobalPool()
	items := postgres.NewItemRepository(pool)
	users := postgres.NewUserRepository(pool)
	notifications := postgres.NewNotificationRepository(pool)

	images, err := storage.New(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}
	fmt.Printf("Image storage backend: %s\n", cfg.Storage.Backend)

	// Refuse to start without a reachable feature extractor; every
	// submission depends on it.
	extractor := embedding.NewClient(cfg.Extractor.URL, cfg.Extractor.Model, cfg.Extractor.Dim)
	healthCtx, healthCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer healthCancel()
	if err := extractor.Health(healthCtx); err != nil {
		return fmt.Errorf("feature extractor at %s is not available: %w", cfg.Extractor.URL, err)
	}
	fmt.Printf("Feature extractor ready at %s (model %s, dim %d)\n",
		cfg.Extractor.URL, cfg.Extractor.Model, cfg.Extractor.Dim)

	dispatcher, err := buildNotifier(cfg, users, notifications)
	if err != nil {
		return err
	}

	describer, err := ai.NewProvider(context.Background(), &cfg.AI)
	if err != nil {
		return fmt.Errorf("configuring AI provider: %w", err)
	}
	if describer != nil {
		fmt.Printf("Description generation enabled (%s)\n", describer.Name())
	}

	engine := match.NewEngine(items, dispatcher)
	service := catalog.NewService(items, notifications, images, extractor, engine, describer)

	port, host, sessionSecret := resolveServeHostPort(cmd)
	server := web.NewServer(host, port, sessionSecret, web.Dependencies{
		Service:       service,
		Items:         items,
		Users:         users,
		Notifications: notifications,
		Images:        images,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
		if err := pool.Close(); err != nil {
			fmt.Printf("Error closing database pool: %v\n", err)
		}
	}()

	fmt.Printf("Starting Lost Found API on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
