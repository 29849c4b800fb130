package conf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alutalk/channel/internal/biz/usecase"
	"github.com/alutalk/channel/internal/data"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("CHANNEL_AUTHKEY", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PROMPTS_CONFIG_PATH", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	require.Equal(t, "AluTalk", cfg.Channel.Name)
	require.Equal(t, "aiweb24:chat", cfg.Channel.TypeOfService)
	require.Equal(t, "messages.json", cfg.Store.File)
	require.Equal(t, 25*time.Hour, cfg.Store.RetentionWindow)
	require.Equal(t, time.Hour, cfg.Store.SweepInterval)
	require.Equal(t, 5, cfg.Moderation.MaxAttempts)
	require.Equal(t, data.DefaultProfanityURL, cfg.Moderation.ProfanityURL)
	require.Equal(t, 5001, cfg.Server.Port)
	require.Equal(t, 30*time.Second, cfg.Oracle.Timeout)
	require.NotNil(t, cfg.Prompts)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("CHANNEL_AUTHKEY", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CHANNEL_NAME", "Flat Earth")
	t.Setenv("RETENTION_WINDOW", "2h")
	t.Setenv("CLASSIFIER_MAX_ATTEMPTS", "3")
	t.Setenv("MASK_CHAR", "#")
	t.Setenv("PORT", "8080")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	require.Equal(t, "Flat Earth", cfg.Channel.Name)
	require.Equal(t, 2*time.Hour, cfg.Store.RetentionWindow)
	require.Equal(t, 3, cfg.Moderation.MaxAttempts)
	require.Equal(t, 8080, cfg.Server.Port)

	r, err := cfg.Moderation.MaskRune()
	require.NoError(t, err)
	require.Equal(t, '#', r)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Channel:    ChannelConfig{AuthKey: "secret"},
			Oracle:     OracleConfig{APIKey: "sk-test"},
			Moderation: ModerationConfig{MaxAttempts: 5, MaskChar: "*"},
			Store:      StoreConfig{File: "messages.json", RetentionWindow: time.Hour},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"missing authkey", func(c *Config) { c.Channel.AuthKey = "" }, "CHANNEL_AUTHKEY"},
		{"missing oracle", func(c *Config) { c.Oracle.APIKey = "" }, "OPENAI_API_KEY"},
		{"missing file", func(c *Config) { c.Store.File = "" }, "CHANNEL_FILE"},
		{"zero window", func(c *Config) { c.Store.RetentionWindow = 0 }, "RETENTION_WINDOW"},
		{"zero attempts", func(c *Config) { c.Moderation.MaxAttempts = 0 }, "CLASSIFIER_MAX_ATTEMPTS"},
		{"long mask", func(c *Config) { c.Moderation.MaskChar = "**" }, "MASK_CHAR"},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			require.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	c := &Config{Channel: ChannelConfig{AuthKey: "secret"}}
	require.Error(t, c.ValidateRegistration())

	c.Hub.URL = "http://hub.local"
	require.NoError(t, c.ValidateRegistration())
}

func TestToDataOptions(t *testing.T) {
	c := &Config{
		Oracle:     OracleConfig{APIKey: "sk", Model: "m", Timeout: time.Second},
		Moderation: ModerationConfig{ProfanityURL: "http://words", WordCache: "w.txt", AuditDBPath: "a.db"},
		Store:      StoreConfig{File: "m.json"},
		Hub:        HubConfig{URL: "http://hub", AuthKey: "hk"},
	}

	opts := c.ToDataOptions()
	require.Equal(t, "m.json", opts.MessageFile)
	require.Equal(t, "sk", opts.Oracle.APIKey)
	require.Equal(t, "http://words", opts.ProfanityURL)
	require.Equal(t, "a.db", opts.AuditDBPath)
	require.Equal(t, "hk", opts.HubAuthKey)
}

func TestLoadPromptsConfig_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "assistant:\n  prefix: \"/bot\"\nmoderation:\n  rejection_template: \"{{sender}} went off topic (100%)\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadPromptsConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/bot", cfg.Assistant.Prefix)
	require.Equal(t, usecase.DefaultPromptConfig.AssistantPersona, cfg.Assistant.Persona)
	require.Equal(t, usecase.DefaultPromptConfig.Welcome, cfg.Channel.Welcome)

	pc := cfg.ToPromptConfig()
	require.Equal(t, "{{sender}} went off topic (100%)", pc.RejectionTemplate)
}

func TestLoadPromptsConfig_MissingExplicitPath(t *testing.T) {
	_, err := LoadPromptsConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefaultPromptsConfig_RoundTrip(t *testing.T) {
	require.Equal(t, usecase.DefaultPromptConfig, DefaultPromptsConfig().ToPromptConfig())
}

func TestLoadPromptsConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("moderation: [unclosed"), 0644))

	_, err := LoadPromptsConfig(path)
	require.Error(t, err)
}
