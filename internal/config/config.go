package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Storage  StorageConfig
	Mail     MailConfig
	Auth     AuthConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port         string
	BaseURL      string
	TemplatesDir string
	StaticDir    string
	AdsEmail     string
	Debug        bool
}

type DatabaseConfig struct {
	DSN string
}

type SessionConfig struct {
	Name   string
	Secret string
}

// StorageConfig describes an S3-compatible media bucket.
type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	UsePathStyle    bool
	SignedURLTTL    time.Duration
}

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Enabled reports whether every SMTP setting is present.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Port != "" && m.Username != "" && m.Password != "" && m.From != ""
}

type AuthConfig struct {
	TokenSecret         string
	ConfirmTTL          time.Duration
	RequireConfirmation bool
}

type AdminConfig struct {
	UserIDs []string
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=aoa port=5432 sslmode=disable TimeZone=UTC"

// LoadFromEnv reads .env (when present) into the process environment and
// builds a Config from it. Variables already set in the shell win.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}
	return load(os.Getenv)
}

// LoadFromMap builds a Config from an in-memory map. Used by tests.
func LoadFromMap(env map[string]string) (*Config, error) {
	return load(func(key string) string { return env[key] })
}

func load(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	getBool := func(key string, def bool) bool {
		if b, err := strconv.ParseBool(getenv(key)); err == nil {
			return b
		}
		return def
	}
	getDuration := func(key string, def time.Duration) time.Duration {
		if d, err := time.ParseDuration(getenv(key)); err == nil {
			return d
		}
		return def
	}

	port := get("PORT", "8080")
	sessionSecret := get("SESSION_SECRET", "secret_key_change_me")

	cfg := &Config{
		Server: ServerConfig{
			Port:         port,
			BaseURL:      strings.TrimRight(get("BASE_URL", "http://localhost:"+port), "/"),
			TemplatesDir: get("TEMPLATES_DIR", "./web/templates"),
			StaticDir:    get("STATIC_DIR", "./web/static"),
			AdsEmail:     get("ADS_CONTACT_EMAIL", "aoaaskhelp@gmail.com"),
			Debug:        getBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			DSN: get("DATABASE_URL", defaultDSN),
		},
		Session: SessionConfig{
			Name:   get("SESSION_NAME", "aoa_session"),
			Secret: sessionSecret,
		},
		Storage: StorageConfig{
			Endpoint:        get("STORAGE_ENDPOINT", ""),
			Region:          get("STORAGE_REGION", "us-east-1"),
			AccessKeyID:     get("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: get("STORAGE_SECRET_ACCESS_KEY", ""),
			Bucket:          get("STORAGE_BUCKET", "aoa-media"),
			PublicBaseURL:   strings.TrimRight(get("STORAGE_PUBLIC_URL", ""), "/"),
			UsePathStyle:    getBool("STORAGE_PATH_STYLE", true),
			SignedURLTTL:    getDuration("STORAGE_SIGNED_URL_TTL", time.Hour),
		},
		Mail: MailConfig{
			Host:     get("SMTP_HOST", ""),
			Port:     get("SMTP_PORT", ""),
			Username: get("SMTP_USER", ""),
			Password: get("SMTP_PASS", ""),
			From:     get("SMTP_FROM", ""),
		},
		Auth: AuthConfig{
			TokenSecret: get("AUTH_TOKEN_SECRET", sessionSecret),
			ConfirmTTL:  getDuration("AUTH_CONFIRM_TTL", 24*time.Hour),
		},
		Admin: AdminConfig{
			UserIDs: splitList(getenv("ADMIN_USER_IDS")),
		},
	}

	// Without SMTP nobody could ever confirm, so confirmation is only
	// required by default when mail is configured.
	cfg.Auth.RequireConfirmation = getBool("AUTH_REQUIRE_CONFIRMATION", cfg.Mail.Enabled())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage.SignedURLTTL <= 0 {
		return fmt.Errorf("STORAGE_SIGNED_URL_TTL must be positive")
	}
	if c.Auth.ConfirmTTL <= 0 {
		return fmt.Errorf("AUTH_CONFIRM_TTL must be positive")
	}
	if c.Auth.RequireConfirmation && !c.Mail.Enabled() {
		return fmt.Errorf("AUTH_REQUIRE_CONFIRMATION needs SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and SMTP_FROM")
	}
	return nil
}

// StorageEnabled reports whether media uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c.Storage.Endpoint != "" && c.Storage.AccessKeyID != "" && c.Storage.SecretAccessKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
