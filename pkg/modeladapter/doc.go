// Package modeladapter defines the [Completer] interface and the embeddable
// [ModelAdapter] base struct shared by provider adapters.
//
// ModelAdapter carries the model name, bearer auth, extra headers and a
// [github.com/germanamz/iointel/pkg/modeladapter/usage] tracker, and offers
// JSON GET/POST helpers that turn non-2xx responses into [StatusError].
// Provider-specific wire formats live in separate packages.
package modeladapter
