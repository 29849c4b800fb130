package conf

import (
	"fmt"
	"time"
	"unicode/utf8"

	env "github.com/Netflix/go-env"

	"github.com/alutalk/channel/internal/data"
)

// Config represents application configuration
type Config struct {
	Channel    ChannelConfig
	Hub        HubConfig
	Oracle     OracleConfig
	Moderation ModerationConfig
	Store      StoreConfig
	Server     ServerConfig

	// Prompts configuration (loaded from YAML)
	Prompts *PromptsConfig
}

// ChannelConfig describes how the channel presents itself
type ChannelConfig struct {
	Name          string `env:"CHANNEL_NAME,default=AluTalk"`
	Endpoint      string `env:"CHANNEL_ENDPOINT,default=http://localhost:5001"`
	AuthKey       string `env:"CHANNEL_AUTHKEY"`
	TypeOfService string `env:"CHANNEL_TYPE_OF_SERVICE,default=aiweb24:chat"`
}

// HubConfig contains hub registration settings
type HubConfig struct {
	URL     string `env:"HUB_URL"`
	AuthKey string `env:"HUB_AUTHKEY"`
}

// OracleConfig contains the text-generation service settings
type OracleConfig struct {
	APIKey  string        `env:"OPENAI_API_KEY"`
	Model   string        `env:"OPENAI_MODEL,default=gpt-4o-mini"`
	BaseURL string        `env:"OPENAI_BASE_URL"`
	Timeout time.Duration `env:"ORACLE_TIMEOUT,default=30s"`
}

// ModerationConfig contains moderation pipeline settings
type ModerationConfig struct {
	MaxAttempts  int    `env:"CLASSIFIER_MAX_ATTEMPTS,default=5"`
	ProfanityURL string `env:"PROFANITY_URL"`
	WordCache    string `env:"PROFANITY_CACHE,default=profanity.txt"`
	MaskChar     string `env:"MASK_CHAR,default=*"`
	AuditDBPath  string `env:"AUDIT_DB_PATH"`
}

// StoreConfig contains message store settings
type StoreConfig struct {
	File            string        `env:"CHANNEL_FILE,default=messages.json"`
	RetentionWindow time.Duration `env:"RETENTION_WINDOW,default=25h"`
	SweepInterval   time.Duration `env:"RETENTION_SWEEP_INTERVAL,default=1h"` // 0 disables the background sweep
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port              int    `env:"PORT,default=5001"`
	LogLevel          string `env:"LOG_LEVEL,default=info"`
	PromptsConfigPath string `env:"PROMPTS_CONFIG_PATH"`
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	var cfg Config
	for _, section := range []any{&cfg.Channel, &cfg.Hub, &cfg.Oracle, &cfg.Moderation, &cfg.Store, &cfg.Server} {
		if _, err := env.UnmarshalFromEnviron(section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if cfg.Moderation.ProfanityURL == "" {
		cfg.Moderation.ProfanityURL = data.DefaultProfanityURL
	}

	prompts, err := LoadPromptsConfig(cfg.Server.PromptsConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Prompts = prompts

	return &cfg, nil
}

// MaskRune returns the configured mask character
func (c *ModerationConfig) MaskRune() (rune, error) {
	if utf8.RuneCountInString(c.MaskChar) != 1 {
		return 0, &ConfigError{Field: "MASK_CHAR", Message: fmt.Sprintf("must be a single character, got %q", c.MaskChar)}
	}
	r, _ := utf8.DecodeRuneInString(c.MaskChar)
	return r, nil
}

// ToDataOptions converts to repository options
func (c *Config) ToDataOptions() data.Options {
	return data.Options{
		MessageFile: c.Store.File,
		Oracle: data.OracleConfig{
			APIKey:  c.Oracle.APIKey,
			Model:   c.Oracle.Model,
			BaseURL: c.Oracle.BaseURL,
			Timeout: c.Oracle.Timeout,
		},
		ProfanityURL: c.Moderation.ProfanityURL,
		WordCache:    c.Moderation.WordCache,
		AuditDBPath:  c.Moderation.AuditDBPath,
		HubURL:       c.Hub.URL,
		HubAuthKey:   c.Hub.AuthKey,
	}
}

// Validate validates the configuration needed to serve the channel
func (c *Config) Validate() error {
	if c.Channel.AuthKey == "" {
		return &ConfigError{Field: "CHANNEL_AUTHKEY", Message: "required"}
	}
	if c.Oracle.APIKey == "" && c.Oracle.BaseURL == "" {
		return &ConfigError{Field: "OPENAI_API_KEY", Message: "required"}
	}
	if c.Store.File == "" {
		return &ConfigError{Field: "CHANNEL_FILE", Message: "required"}
	}
	if c.Store.RetentionWindow <= 0 {
		return &ConfigError{Field: "RETENTION_WINDOW", Message: "must be positive"}
	}
	if c.Moderation.MaxAttempts <= 0 {
		return &ConfigError{Field: "CLASSIFIER_MAX_ATTEMPTS", Message: "must be positive"}
	}
	if _, err := c.Moderation.MaskRune(); err != nil {
		return err
	}
	return nil
}

// ValidateRegistration validates the configuration needed to register with the hub
func (c *Config) ValidateRegistration() error {
	if c.Hub.URL == "" {
		return &ConfigError{Field: "HUB_URL", Message: "required"}
	}
	if c.Channel.AuthKey == "" {
		return &ConfigError{Field: "CHANNEL_AUTHKEY", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
