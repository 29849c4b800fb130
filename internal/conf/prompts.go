package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alutalk/channel/internal/biz/usecase"
)

// PromptsConfig contains all prompt configurations loaded from YAML
type PromptsConfig struct {
	Moderation ModerationPrompts `yaml:"moderation"`
	Assistant  AssistantPrompts  `yaml:"assistant"`
	Channel    ChannelPrompts    `yaml:"channel"`
}

// ModerationPrompts contains the topic filter prompts
type ModerationPrompts struct {
	TopicInstruction  string `yaml:"topic_instruction"`
	RejectionTemplate string `yaml:"rejection_template"` // {{sender}} is replaced by the original sender
}

// AssistantPrompts contains the assistant reply prompts
type AssistantPrompts struct {
	Prefix  string `yaml:"prefix"`
	Persona string `yaml:"persona"`
}

// ChannelPrompts contains texts shown to channel readers
type ChannelPrompts struct {
	Welcome string `yaml:"welcome"`
}

// LoadPromptsConfig loads prompts configuration from YAML file
func LoadPromptsConfig(configPath string) (*PromptsConfig, error) {
	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/prompts.yaml",
			"/etc/alutalk/prompts.yaml",
		}
		// Add path relative to executable
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "prompts.yaml"))
		}
	}

	var data []byte
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err == nil {
			data = raw
			break
		}
	}

	if data == nil {
		if configPath != "" {
			return nil, fmt.Errorf("failed to read prompts config %s", configPath)
		}
		return DefaultPromptsConfig(), nil
	}

	var config PromptsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse prompts.yaml: %w", err)
	}

	// Fill in defaults for empty values
	config.fillDefaults()

	return &config, nil
}

// fillDefaults fills in default values for empty fields
func (c *PromptsConfig) fillDefaults() {
	defaults := DefaultPromptsConfig()

	if c.Moderation.TopicInstruction == "" {
		c.Moderation.TopicInstruction = defaults.Moderation.TopicInstruction
	}
	if c.Moderation.RejectionTemplate == "" {
		c.Moderation.RejectionTemplate = defaults.Moderation.RejectionTemplate
	}
	if c.Assistant.Prefix == "" {
		c.Assistant.Prefix = defaults.Assistant.Prefix
	}
	if c.Assistant.Persona == "" {
		c.Assistant.Persona = defaults.Assistant.Persona
	}
	if c.Channel.Welcome == "" {
		c.Channel.Welcome = defaults.Channel.Welcome
	}
}

// DefaultPromptsConfig returns the default prompts configuration
func DefaultPromptsConfig() *PromptsConfig {
	d := usecase.DefaultPromptConfig
	return &PromptsConfig{
		Moderation: ModerationPrompts{
			TopicInstruction:  d.TopicInstruction,
			RejectionTemplate: d.RejectionTemplate,
		},
		Assistant: AssistantPrompts{
			Prefix:  d.AssistantPrefix,
			Persona: d.AssistantPersona,
		},
		Channel: ChannelPrompts{
			Welcome: d.Welcome,
		},
	}
}

// ToPromptConfig converts to the usecase prompt configuration
func (c *PromptsConfig) ToPromptConfig() usecase.PromptConfig {
	return usecase.PromptConfig{
		TopicInstruction:  c.Moderation.TopicInstruction,
		AssistantPersona:  c.Assistant.Persona,
		AssistantPrefix:   c.Assistant.Prefix,
		RejectionTemplate: c.Moderation.RejectionTemplate,
		Welcome:           c.Channel.Welcome,
	}
}
