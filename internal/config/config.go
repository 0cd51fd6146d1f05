package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvAPIToken = "SHIFTLEFT_API_TOKEN"
	EnvOrgID    = "SHIFTLEFT_ORG_ID"
	EnvAPIBase  = "SHIFTLEFT_API_BASE"

	DefaultAPIBase = "https://www.shiftleft.io/api/v4"
	DefaultTimeout = 60 * time.Second
)

// Config is built once per run by Load and only read afterwards.
type Config struct {
	Token        string        `yaml:"-"`
	OrgID        string        `yaml:"-"`
	APIBase      string        `yaml:"api_base"`
	OutputFormat string        `yaml:"output_format"`
	Timeout      time.Duration `yaml:"timeout"`
	AWSRegion    string        `yaml:"aws_region"`
	Slack        SlackConfig   `yaml:"slack"`
}

type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Channel    string `yaml:"channel"`
}

// MissingEnvError reports a required environment variable that is unset or empty.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("configuration error: environment variable %s is not set", e.Name)
}

// Load reads the required credentials through getenv and, when path is not empty,
// the optional settings file.
func Load(getenv func(string) string, path string) (*Config, error) {
	cfg := Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *fileCfg
	}

	cfg.Token = getenv(EnvAPIToken)
	if cfg.Token == "" {
		return nil, &MissingEnvError{Name: EnvAPIToken}
	}
	cfg.OrgID = getenv(EnvOrgID)
	if cfg.OrgID == "" {
		return nil, &MissingEnvError{Name: EnvOrgID}
	}

	if base := getenv(EnvAPIBase); base != "" {
		cfg.APIBase = base
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "text", "table", "json", "csv":
	default:
		return fmt.Errorf("invalid output_format: %s", c.OutputFormat)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}

	return nil
}

// WithToken returns a copy of c using token as the API credential.
func (c Config) WithToken(token string) *Config {
	c.Token = token
	return &c
}

// Vars returns a fresh copy of the base placeholder mapping.
func (c *Config) Vars() map[string]string {
	return map[string]string{
		"authHDR":  "Bearer " + c.Token,
		"api_base": c.APIBase,
		"orgID":    c.OrgID,
	}
}
