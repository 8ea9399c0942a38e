package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/germanamz/iointel/pkg/catalog"
	"github.com/germanamz/iointel/pkg/completion"
	"github.com/germanamz/iointel/pkg/engine"
)

// options holds the parsed command-line flags.
type options struct {
	configPath string
	envFile    string
	verbose    bool
	picker     bool
	markdown   bool
	timeout    time.Duration
}

// environment is everything run needs from the process.
type environment struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	lookupEnv  func(string) (string, bool)
	client     *http.Client // nil means http.DefaultClient
	isTerminal bool
	width      int
}

// run executes one list-select-prompt-complete pass and returns the process
// exit code.
func run(ctx context.Context, opts options, env environment) int {
	cfg, err := loadConfig(opts, env.lookupEnv)
	if err != nil {
		fmt.Fprintf(env.stderr, "error: %v\n", err)
		return 1
	}

	log := newLogger(env.stderr, opts.verbose)
	st := newStyles(env.stdout)

	a := &app{
		cfg:       cfg,
		lister:    catalog.New(cfg, env.client, log),
		requester: completion.New(cfg, engine.NewRouter(engine.RouterOpts{Client: env.client, Timeout: cfg.CompletionTimeout(), Logger: log}), log),
		in:        bufio.NewReader(env.stdin),
		out:       env.stdout,
		styles:    st,
		picker:    opts.picker && env.isTerminal,
		markdown:  opts.markdown,
		width:     env.width,
	}

	if err := a.run(ctx); err != nil {
		if errors.Is(err, errNoModels) {
			return 1
		}
		fmt.Fprintf(env.stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

// loadConfig resolves the configuration: explicit -config file, else
// iointel.yaml when present, else defaults; then the environment and flag
// overrides; then validation.
func loadConfig(opts options, lookupEnv func(string) (string, bool)) (engine.Config, error) {
	cfg := engine.Defaults()

	switch {
	case opts.configPath != "":
		loaded, err := engine.LoadConfig(opts.configPath)
		if err != nil {
			return engine.Config{}, err
		}
		cfg = loaded
	default:
		if _, err := os.Stat(defaultConfigPath); err == nil {
			loaded, err := engine.LoadConfig(defaultConfigPath)
			if err != nil {
				return engine.Config{}, err
			}
			cfg = loaded
		}
	}

	cfg = cfg.WithEnv(lookupEnv)

	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout.String()
	}

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}

	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05"))
			}
			return a
		},
	}))
}

// modelLister and promptCompleter are the two calls the app sequences.
type modelLister interface {
	List(ctx context.Context) []string
}

type promptCompleter interface {
	Complete(ctx context.Context, prompt, model string) (string, bool)
}

var errNoModels = errors.New("no models available")

type app struct {
	cfg       engine.Config
	lister    modelLister
	requester promptCompleter
	in        *bufio.Reader
	out       io.Writer
	styles    styles
	picker    bool
	markdown  bool
	width     int
}

func (a *app) run(ctx context.Context) error {
	a.printBanner()

	fmt.Fprintln(a.out, "Fetching available models...")
	models := a.lister.List(ctx)
	if len(models) == 0 {
		fmt.Fprintln(a.out, a.styles.failure.Render("No chat models available. Check your API key or internet connection."))
		return errNoModels
	}

	var (
		model, prompt string
		err           error
	)
	if a.picker {
		model, prompt, err = pickInteractively(ctx, models)
	} else {
		a.printMenu(models)
		model, err = selectModel(a.in, a.out, models)
		if err == nil {
			prompt, err = readPrompt(a.in, a.out)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nSending prompt to model: %s\n\n", a.styles.model.Render(model))

	if text, ok := a.requester.Complete(ctx, prompt, model); ok {
		fmt.Fprintln(a.out, a.styles.heading.Render("--- AI Response ---"))
		fmt.Fprintln(a.out, a.renderResponse(text))
	} else {
		fmt.Fprintln(a.out, a.styles.failure.Render("Failed to get a response from io.net Intelligence."))
	}

	fmt.Fprintf(a.out, "\nTo find supported models, visit: %s\n", a.styles.dim.Render(a.cfg.DocsURL))

	return nil
}

func (a *app) printBanner() {
	fmt.Fprintln(a.out, a.styles.banner.Render("io.net Intelligence CLI Tester"))
	fmt.Fprintln(a.out, a.styles.dim.Render("----------------------------------------"))
}

func (a *app) printMenu(models []string) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, a.styles.heading.Render("Available chat models:"))
	for i, m := range models {
		fmt.Fprintf(a.out, "%s %s\n", a.styles.index.Render(fmt.Sprintf("%d.", i+1)), m)
	}
}
