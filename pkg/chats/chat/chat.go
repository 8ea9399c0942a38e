// Package chat provides the conversation container sent to completion
// backends.
package chat

import (
	"github.com/germanamz/iointel/pkg/chats/message"
)

// Chat is an ordered list of messages. The zero value is an empty
// conversation. Chat is not safe for concurrent use.
type Chat struct {
	messages []message.Message
}

// New creates a Chat holding the given messages.
func New(msgs ...message.Message) *Chat {
	return &Chat{messages: msgs}
}

// Append adds messages to the end of the conversation.
func (c *Chat) Append(msgs ...message.Message) {
	c.messages = append(c.messages, msgs...)
}

// Len returns the number of messages.
func (c *Chat) Len() int {
	return len(c.messages)
}

// At returns the message at index. It panics if index is out of range.
func (c *Chat) At(index int) message.Message {
	return c.messages[index]
}

// Last returns the most recent message, or false when the chat is empty.
func (c *Chat) Last() (message.Message, bool) {
	if len(c.messages) == 0 {
		return message.Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Messages returns a copy of the messages.
func (c *Chat) Messages() []message.Message {
	cp := make([]message.Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}
