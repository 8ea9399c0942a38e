// Package providers groups the wire-format adapters behind
// [github.com/germanamz/iointel/pkg/modeladapter.Completer].
//
// Sub-packages:
//   - [github.com/germanamz/iointel/pkg/providers/openai] OpenAI-compatible chat completions
//
// Adapters are selected by namespace in [github.com/germanamz/iointel/pkg/engine].
package providers
