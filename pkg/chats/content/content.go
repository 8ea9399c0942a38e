// Package content defines the parts a chat message is made of.
package content

// Part is a piece of content within a message.
type Part interface {
	PartKind() string
}

// Text is a plain text part. The text is kept exactly as produced.
type Text struct {
	Text string
}

func (t Text) PartKind() string { return "text" }

// Refusal is a part carrying a provider's refusal explanation in place of an
// answer.
type Refusal struct {
	Reason string
}

func (r Refusal) PartKind() string { return "refusal" }
