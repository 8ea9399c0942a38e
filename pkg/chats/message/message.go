// Package message provides the Message type exchanged with completion
// backends.
package message

import (
	"strings"

	"github.com/germanamz/iointel/pkg/chats/content"
	"github.com/germanamz/iointel/pkg/chats/role"
)

// Message is a single conversation entry composed of content parts.
type Message struct {
	Sender   string
	Role     role.Role
	Parts    []content.Part
	Metadata map[string]any
}

// New creates a Message from the given parts.
func New(sender string, r role.Role, parts ...content.Part) Message {
	return Message{Sender: sender, Role: r, Parts: parts}
}

// NewText creates a Message holding a single text part.
func NewText(sender string, r role.Role, text string) Message {
	return New(sender, r, content.Text{Text: text})
}

// TextContent concatenates all text parts in order. Non-text parts are
// skipped.
func (m Message) TextContent() string {
	var sb strings.Builder
	for _, p := range m.Parts {
		if t, ok := p.(content.Text); ok {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

// HasText reports whether the message carries at least one text part.
func (m Message) HasText() bool {
	for _, p := range m.Parts {
		if _, ok := p.(content.Text); ok {
			return true
		}
	}
	return false
}

// SetMeta stores a metadata value, allocating the map on first use.
func (m *Message) SetMeta(key string, value any) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

// GetMeta returns the metadata value for key.
func (m Message) GetMeta(key string) (any, bool) {
	v, ok := m.Metadata[key]
	return v, ok
}
