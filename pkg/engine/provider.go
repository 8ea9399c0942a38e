package engine

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/germanamz/iointel/pkg/modeladapter"
	"github.com/germanamz/iointel/pkg/providers/openai"
)

// ProviderConfig describes one backend call target after namespace routing.
type ProviderConfig struct {
	Kind    string       // Namespace the model was routed by, e.g. "openai".
	BaseURL string       // API base URL; empty means the kind's default.
	APIKey  string       //nolint:gosec // configuration field, not a hardcoded secret
	Model   string       // Model identifier with the namespace stripped.
	Client  *http.Client // Optional HTTP client.
}

// ProviderFactory creates a Completer from a ProviderConfig.
type ProviderFactory func(cfg ProviderConfig) (modeladapter.Completer, error)

var (
	factoryMu   sync.RWMutex
	factories   = map[string]ProviderFactory{}
	defaultsReg sync.Once
)

func ensureDefaults() {
	defaultsReg.Do(func() {
		factories["openai"] = newOpenAI
	})
}

// RegisterProvider registers a factory under the given namespace.
func RegisterProvider(kind string, factory ProviderFactory) {
	ensureDefaults()

	factoryMu.Lock()
	defer factoryMu.Unlock()

	factories[kind] = factory
}

func getFactory(kind string) (ProviderFactory, bool) {
	ensureDefaults()

	factoryMu.RLock()
	defer factoryMu.RUnlock()

	f, ok := factories[kind]
	return f, ok
}

func newOpenAI(cfg ProviderConfig) (modeladapter.Completer, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	a := openai.New(strings.TrimRight(baseURL, "/"), cfg.APIKey, cfg.Model)
	a.Client = cfg.Client

	return a, nil
}

// SplitModel splits a routed model string "namespace/model" at the first
// slash. The model part may itself contain slashes.
func SplitModel(routed string) (kind, model string, err error) {
	kind, model, ok := strings.Cut(routed, "/")
	if !ok || kind == "" || model == "" {
		return "", "", fmt.Errorf("engine: model %q is not of the form <namespace>/<model>", routed)
	}
	return kind, model, nil
}

// buildCompleter resolves the factory for cfg.Kind and creates a Completer.
func buildCompleter(cfg ProviderConfig) (modeladapter.Completer, error) {
	factory, ok := getFactory(cfg.Kind)
	if !ok {
		return nil, fmt.Errorf("engine: unknown provider namespace %q", cfg.Kind)
	}

	return factory(cfg)
}
