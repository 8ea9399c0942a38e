// Package chats holds the provider-agnostic conversation model.
//
// Sub-packages:
//   - [github.com/germanamz/iointel/pkg/chats/role] conversation roles
//   - [github.com/germanamz/iointel/pkg/chats/content] message parts
//   - [github.com/germanamz/iointel/pkg/chats/message] messages built from a role and parts
//   - [github.com/germanamz/iointel/pkg/chats/chat] ordered conversation container
//
// No wire formats live here; provider adapters translate to and from them.
package chats
