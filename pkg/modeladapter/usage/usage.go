// Package usage records token counts reported by completion APIs.
package usage

import "log/slog"

// TokenCount holds prompt and completion token counts for a single call.
type TokenCount struct {
	InputTokens  int
	OutputTokens int
}

// Total returns the sum of input and output tokens.
func (tc TokenCount) Total() int {
	return tc.InputTokens + tc.OutputTokens
}

// LogValue groups the counts under one attribute in log records.
func (tc TokenCount) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("input", tc.InputTokens),
		slog.Int("output", tc.OutputTokens),
		slog.Int("total", tc.Total()),
	)
}

// Tracker accumulates usage across calls made through one adapter.
// It is not safe for concurrent use.
type Tracker struct {
	entries []TokenCount
}

// Add records a token count entry.
func (t *Tracker) Add(tc TokenCount) {
	t.entries = append(t.entries, tc)
}

// Last returns the most recent entry, or false when nothing was recorded.
func (t *Tracker) Last() (TokenCount, bool) {
	if len(t.entries) == 0 {
		return TokenCount{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Total returns the aggregate over all entries.
func (t *Tracker) Total() TokenCount {
	var total TokenCount
	for _, e := range t.entries {
		total.InputTokens += e.InputTokens
		total.OutputTokens += e.OutputTokens
	}
	return total
}

// Count returns the number of recorded entries.
func (t *Tracker) Count() int {
	return len(t.entries)
}
