// Iointel is an interactive tester for the io.net Intelligence API. It lists
// the models the API key can use, lets the user pick one, sends a single
// prompt and prints the reply.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

const defaultConfigPath = "iointel.yaml"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: iointel [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n  IO_NET_API_KEY  io.net Intelligence API key (required)\n")
	}

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to configuration file (default: "+defaultConfigPath+" if present)")
	flag.StringVar(&opts.envFile, "env", ".env", "path to .env file (ignored if missing)")
	flag.BoolVar(&opts.verbose, "verbose", false, "log debug output, including the raw model catalog")
	flag.BoolVar(&opts.picker, "picker", false, "use interactive forms for model and prompt selection")
	flag.BoolVar(&opts.markdown, "markdown", false, "render the response as markdown")
	flag.DurationVar(&opts.timeout, "timeout", 0, "completion deadline (0 = none, overrides config)")
	flag.Parse()

	if err := loadDotEnv(opts.envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	code := run(ctx, opts, environment{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		lookupEnv:  os.LookupEnv,
		isTerminal: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())), //nolint:gosec // fd fits in int
		width:      terminalWidth(),
	})

	cancel()
	os.Exit(code)
}

// loadDotEnv loads environment variables from path. If the file does not exist
// it is silently ignored so that .env files remain optional.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
	if err != nil {
		return 0
	}
	return w
}
