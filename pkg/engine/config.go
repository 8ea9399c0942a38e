package engine

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPIKey is the environment variable holding the io.net API key.
const EnvAPIKey = "IO_NET_API_KEY" //nolint:gosec // variable name, not a secret

const (
	DefaultBaseURL   = "https://api.intelligence.io.solutions/api/v1"
	DefaultNamespace = "openai"
	DefaultDocsURL   = "https://docs.io.net/reference/get-models-list"
)

// ErrMissingAPIKey is returned by Validate when no credential is configured.
var ErrMissingAPIKey = errors.New("engine: config: api key is required (set " + EnvAPIKey + ")")

// Config is the process-wide configuration. It is built once at startup and
// passed by value; nothing mutates it afterwards.
type Config struct {
	APIKey    string `yaml:"api_key"` //nolint:gosec // configuration field, not a hardcoded secret
	BaseURL   string `yaml:"base_url"`
	ModelsURL string `yaml:"models_url"` // Defaults to BaseURL + "/models".
	Namespace string `yaml:"namespace"`  // Routing prefix prepended to model ids.
	Timeout   string `yaml:"timeout"`    // Completion deadline as a duration string; empty means none.
	DocsURL   string `yaml:"docs_url"`
}

// Defaults returns the configuration used when no file overrides it.
func Defaults() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Namespace: DefaultNamespace,
		DocsURL:   DefaultDocsURL,
	}
}

// LoadConfig reads a YAML file on top of Defaults. Environment variables
// referenced as ${VAR} or $VAR are expanded before parsing, so the file can
// point at the key instead of holding it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Defaults()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}

	return cfg, nil
}

// WithEnv fills an empty APIKey from the environment.
func (c Config) WithEnv(lookup func(string) (string, bool)) Config {
	if c.APIKey != "" {
		return c
	}
	if v, ok := lookup(EnvAPIKey); ok {
		c.APIKey = strings.TrimSpace(v)
	}
	return c
}

// ModelsEndpoint returns the catalog URL.
func (c Config) ModelsEndpoint() string {
	if c.ModelsURL != "" {
		return c.ModelsURL
	}
	return strings.TrimRight(c.BaseURL, "/") + "/models"
}

// CompletionTimeout returns the parsed Timeout, or zero when unset.
// Call Validate first; an unparseable value yields zero here.
func (c Config) CompletionTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks that the configuration can be used to talk to the API.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	if err := validateURL("base_url", c.BaseURL); err != nil {
		return err
	}

	if c.ModelsURL != "" {
		if err := validateURL("models_url", c.ModelsURL); err != nil {
			return err
		}
	}

	if c.Namespace == "" {
		return fmt.Errorf("engine: config: namespace is required")
	}
	if strings.Contains(c.Namespace, "/") {
		return fmt.Errorf("engine: config: namespace %q must not contain '/'", c.Namespace)
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("engine: config: invalid timeout %q: %w", c.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("engine: config: timeout %q must not be negative", c.Timeout)
		}
	}

	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("engine: config: %s is required", field)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("engine: config: invalid %s %q: %w", field, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("engine: config: %s %q must be an http(s) URL", field, raw)
	}

	return nil
}
