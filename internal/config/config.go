package config

import (
	"os"
	"strconv"
)

type Config struct {
	Database  DatabaseConfig
	Storage   StorageConfig
	Extractor ExtractorConfig
	Mail      MailConfig
	SMS       SMSConfig
	AI        AIConfig
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type StorageConfig struct {
	Backend        string // "local" (default) or "minio"
	LocalDir       string // directory for uploaded images (default ./uploads)
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

type ExtractorConfig struct {
	URL   string // embedding sidecar URL, defaults to http://localhost:8000
	Model string // model name for reference only
	Dim   int    // embedding dimensionality, defaults to 1280 (MobileNetV2 pooled)
}

type MailConfig struct {
	Host     string // SMTP host; empty disables the email channel
	Port     int    // SMTP port (default 587)
	Username string
	Password string
	From     string // sender address, defaults to Username
}

// Enabled reports whether the email channel is configured.
func (c *MailConfig) Enabled() bool {
	return c.Host != ""
}

// Sender returns the From address, falling back to the SMTP username.
func (c *MailConfig) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}

type SMSConfig struct {
	AccountSID string // Twilio account SID; empty disables the SMS channel
	AuthToken  string
	From       string // sending phone number
}

// Enabled reports whether the SMS channel is configured.
func (c *SMSConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

type AIConfig struct {
	Provider     string // "openai", "gemini" or empty to disable description generation
	OpenAIToken  string
	GeminiAPIKey string
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envBool reads an environment variable as a boolean, false when unset or invalid.
func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}

// envDefault reads an environment variable with a fallback default.
func envDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Storage: StorageConfig{
			Backend:        envDefault("STORAGE_BACKEND", "local"),
			LocalDir:       envDefault("STORAGE_LOCAL_DIR", "uploads"),
			MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
			MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
			MinIOBucket:    envDefault("MINIO_BUCKET", "lost-found"),
			MinIOUseSSL:    envBool("MINIO_USE_SSL"),
		},
		Extractor: ExtractorConfig{
			URL:   envDefault("EXTRACTOR_URL", "http://localhost:8000"),
			Model: envDefault("EXTRACTOR_MODEL", "mobilenet_v2"),
			Dim:   envInt("EXTRACTOR_DIM", 1280),
		},
		Mail: MailConfig{
			Host:     os.Getenv("MAIL_HOST"),
			Port:     envInt("MAIL_PORT", 587),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
		},
		SMS: SMSConfig{
			AccountSID: os.Getenv("TWILIO_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH"),
			From:       os.Getenv("TWILIO_FROM"),
		},
		AI: AIConfig{
			Provider:     os.Getenv("AI_PROVIDER"),
			OpenAIToken:  os.Getenv("OPENAI_TOKEN"),
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		},
	}
}
