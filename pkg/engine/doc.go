// Package engine holds the runtime configuration and the provider routing
// layer.
//
// [Config] is loaded once from defaults, an optional YAML file and the
// environment. [Router] resolves "namespace/model" strings to a registered
// [ProviderFactory], wraps the resulting completer with [Logger] and
// [Timeout] middlewares, and performs one completion.
package engine
