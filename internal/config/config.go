package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"dispatch-cli/internal/connector"
	"dispatch-cli/internal/dispatch"
	"dispatch-cli/internal/i18n"
	"dispatch-cli/internal/prompts"
)

const (
	EnvAPIKey  = dispatch.DefaultKeySetting
	EnvBaseURL = "MANUS_API_BASE"

	DefaultBaseURL      = "https://api.manus.ai/v1"
	DefaultAgentProfile = dispatch.DefaultAgentProfile
	DefaultTaskMode     = dispatch.TaskModeAgent
	DefaultAuthHeader   = dispatch.DefaultAuthHeader
	DefaultLanguage     = string(i18n.DefaultLanguage)
)

// Config is the persisted config file schema. APIKey is never read from or
// written to the file; it comes from the environment or the auth store.
type Config struct {
	BaseURL               string             `toml:"base_url"`
	AgentProfile          string             `toml:"agent_profile"`
	TaskMode              string             `toml:"task_mode"`
	AuthHeader            string             `toml:"auth_header"`
	Language              string             `toml:"language"`
	Repository            string             `toml:"repository"`
	Guidelines            string             `toml:"guidelines"`
	RequestTimeoutSeconds int                `toml:"request_timeout_seconds"`
	DispatchConnectors    []string           `toml:"dispatch_connectors"`
	Connectors            connector.Registry `toml:"connectors"`

	APIKey string `toml:"-"`
	Source string `toml:"-"`
}

func Default() Config {
	return Config{
		BaseURL:            DefaultBaseURL,
		AgentProfile:       DefaultAgentProfile,
		TaskMode:           DefaultTaskMode,
		AuthHeader:         DefaultAuthHeader,
		Language:           DefaultLanguage,
		Repository:         prompts.DefaultRepository,
		Guidelines:         prompts.DefaultGuidelines,
		DispatchConnectors: append([]string(nil), connector.Defaults...),
		Connectors: connector.Registry{
			connector.GitHub: "bbb0df76-66bd-4a24-ae4f-2aac4750d90b",
			connector.Linear: "982c169d-0c89-4dbd-95fd-30b49cc2f71e",
		},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dispatch", "config.toml")
}

// LoadDotEnv loads KEY=value pairs from path (".env" when empty) into the
// process environment without overriding variables that are already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Load reads the config file at path (DefaultPath when empty) on top of
// Default and then applies environment overrides. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if err == nil {
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if env := strings.TrimSpace(os.Getenv(EnvBaseURL)); env != "" {
		cfg.BaseURL = env
	}
	if env := strings.TrimSpace(os.Getenv(EnvAPIKey)); env != "" {
		cfg.APIKey = env
	}
}

// ResolveConnectors maps DispatchConnectors through the Connectors table.
func (c Config) ResolveConnectors() ([]string, error) {
	return c.Connectors.Resolve(c.DispatchConnectors)
}
