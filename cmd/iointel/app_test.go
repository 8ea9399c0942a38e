package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/germanamz/iointel/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	srv       *httptest.Server
	hits      atomic.Int32
	models    []string
	reply     string // empty means the completion endpoint fails
	gotModel  string
	gotPrompt string
}

func newFakeAPI(t *testing.T, models []string, reply string) *fakeAPI {
	t.Helper()

	f := &fakeAPI{models: models, reply: reply}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)

	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)

	if r.Header.Get("Authorization") != "Bearer io-test" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.URL.Path {
	case "/api/v1/models":
		data := make([]map[string]any, len(f.models))
		for i, m := range f.models {
			data[i] = map[string]any{"id": m, "object": "model"}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})

	case "/api/v1/chat/completions":
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.gotModel = body.Model
		if len(body.Messages) == 1 {
			f.gotPrompt = body.Messages[0].Content
		}

		if f.reply == "" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"upstream error"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": f.reply}}},
		})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) configFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "iointel.yaml")
	body := "base_url: " + f.srv.URL + "/api/v1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func envWithKey(key string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		if name == engine.EnvAPIKey && key != "" {
			return key, true
		}
		return "", false
	}
}

func runApp(t *testing.T, f *fakeAPI, key, stdin string, opts options) (int, string, string) {
	t.Helper()

	if opts.configPath == "" {
		opts.configPath = f.configFile(t)
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), opts, environment{
		stdin:     strings.NewReader(stdin),
		stdout:    &stdout,
		stderr:    &stderr,
		lookupEnv: envWithKey(key),
		client:    f.srv.Client(),
	})

	return code, stdout.String(), stderr.String()
}

func TestRun_HappyPath(t *testing.T) {
	f := newFakeAPI(t, []string{"a", "b", "c"}, "hello")

	code, out, _ := runApp(t, f, "io-test", "z\n2\nSay hi\n", options{})

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "io.net Intelligence CLI Tester")
	assert.Contains(t, out, "Fetching available models...")
	assert.Contains(t, out, "Available chat models:")
	assert.Contains(t, out, "1. a\n2. b\n3. c\n")
	assert.Equal(t, 1, strings.Count(out, "Invalid selection. Try again."))
	assert.Contains(t, out, "Sending prompt to model: b")
	assert.Contains(t, out, "--- AI Response ---\nhello\n")
	assert.Contains(t, out, "To find supported models, visit: https://docs.io.net/reference/get-models-list")

	assert.Equal(t, "b", f.gotModel, "namespace prefix is stripped before the wire call")
	assert.Equal(t, "Say hi", f.gotPrompt)
}

func TestRun_MissingCredentialMakesNoRequest(t *testing.T) {
	f := newFakeAPI(t, []string{"a"}, "hello")

	code, out, errOut := runApp(t, f, "", "1\nhi\n", options{})

	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "IO_NET_API_KEY")
	assert.Zero(t, f.hits.Load())
}

func TestRun_NoModelsExitsWithOne(t *testing.T) {
	f := newFakeAPI(t, nil, "hello")

	code, out, _ := runApp(t, f, "io-test", "", options{})

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "No chat models available. Check your API key or internet connection.")
	assert.NotContains(t, out, "Available chat models:")
	assert.Equal(t, int32(1), f.hits.Load())
}

func TestRun_RejectedKeyExitsWithOne(t *testing.T) {
	f := newFakeAPI(t, []string{"a"}, "hello")

	code, out, errOut := runApp(t, f, "io-wrong", "", options{})

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "No chat models available.")
	assert.Contains(t, errOut, "could not fetch models")
	assert.Contains(t, errOut, "unexpected status 401")
}

func TestRun_CompletionFailureStillExitsZero(t *testing.T) {
	f := newFakeAPI(t, []string{"a", "b"}, "")

	code, out, errOut := runApp(t, f, "io-test", "a\nhi\n", options{})

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Failed to get a response from io.net Intelligence.")
	assert.NotContains(t, out, "--- AI Response ---")
	assert.Contains(t, out, "To find supported models, visit:")
	assert.Contains(t, errOut, "error calling completion API")
}

func TestRun_EmptyPromptIsSent(t *testing.T) {
	f := newFakeAPI(t, []string{"a"}, "ok")

	code, _, _ := runApp(t, f, "io-test", "1\n\n", options{})

	assert.Equal(t, 0, code)
	assert.Equal(t, "a", f.gotModel)
	assert.Empty(t, f.gotPrompt)
}

func TestRun_StdinClosedDuringSelection(t *testing.T) {
	f := newFakeAPI(t, []string{"a"}, "ok")

	code, _, errOut := runApp(t, f, "io-test", "nope\n", options{})

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "read selection")
}

func TestRun_VerboseLogsRawCatalog(t *testing.T) {
	f := newFakeAPI(t, []string{"a"}, "ok")

	_, _, errOut := runApp(t, f, "io-test", "1\nhi\n", options{verbose: true})

	assert.Contains(t, errOut, "raw catalog response")
	assert.Contains(t, errOut, "completion finished")
}

func TestRun_PickerFallsBackWithoutTerminal(t *testing.T) {
	f := newFakeAPI(t, []string{"a"}, "ok")

	code, out, _ := runApp(t, f, "io-test", "1\nhi\n", options{picker: true})

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Available chat models:")
}

func TestRun_MissingConfigFile(t *testing.T) {
	f := newFakeAPI(t, []string{"a"}, "ok")

	code, _, errOut := runApp(t, f, "io-test", "", options{configPath: "/no/such/iointel.yaml"})

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "engine: load config")
	assert.Zero(t, f.hits.Load())
}

func TestLoadConfig_TimeoutFlagOverrides(t *testing.T) {
	cfg, err := loadConfig(options{timeout: 90 * time.Second}, envWithKey("io-test"))
	require.NoError(t, err)

	assert.Equal(t, "io-test", cfg.APIKey)
	assert.Equal(t, 90*time.Second, cfg.CompletionTimeout())
}

func TestRenderResponse(t *testing.T) {
	a := &app{}
	assert.Equal(t, "  **raw**\n", a.renderResponse("  **raw**\n"))

	a.markdown = true
	rendered := a.renderResponse("# Title\n\nbody text")
	assert.Contains(t, rendered, "Title")
	assert.Contains(t, rendered, "body text")
}
