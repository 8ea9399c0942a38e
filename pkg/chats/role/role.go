// Package role defines the sender roles of a chat completion conversation.
package role

// Role is the author of a message as understood by chat completion APIs.
type Role string

const (
	System    Role = "system"
	User      Role = "user"
	Assistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case System, User, Assistant:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
