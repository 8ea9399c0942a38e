package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// resolveSelection maps user input to a model. A 1-based index wins over an
// identical model id; otherwise the input must equal an id exactly.
func resolveSelection(input string, models []string) (string, bool) {
	if isDigits(input) {
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(models) {
			return models[n-1], true
		}
	}

	for _, m := range models {
		if m == input {
			return m, true
		}
	}

	return "", false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// selectModel prompts until the user enters a valid index or model id.
func selectModel(in *bufio.Reader, out io.Writer, models []string) (string, error) {
	for {
		fmt.Fprintf(out, "\nSelect model by number (1-%d), or type model name: ", len(models))

		line, err := readLine(in)
		if err != nil {
			return "", fmt.Errorf("read selection: %w", err)
		}

		if m, ok := resolveSelection(line, models); ok {
			return m, nil
		}

		fmt.Fprintln(out, "Invalid selection. Try again.")
	}
}

// readPrompt reads one prompt line. Any text, including none, is accepted.
func readPrompt(in *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter your prompt: ")

	line, err := readLine(in)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}

	return line, nil
}

// readLine returns the next line without surrounding whitespace. A final line
// without a trailing newline is returned before io.EOF is reported.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}
