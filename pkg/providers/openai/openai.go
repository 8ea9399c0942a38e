// Package openai provides a Completer for OpenAI-compatible Chat Completions
// APIs, such as the io.net Intelligence API.
package openai

import (
	"context"
	"fmt"

	"github.com/germanamz/iointel/pkg/chats/chat"
	"github.com/germanamz/iointel/pkg/chats/content"
	"github.com/germanamz/iointel/pkg/chats/message"
	"github.com/germanamz/iointel/pkg/chats/role"
	"github.com/germanamz/iointel/pkg/modeladapter"
	"github.com/germanamz/iointel/pkg/modeladapter/usage"
)

const completionsPath = "/chat/completions"

var _ modeladapter.Completer = (*Adapter)(nil)

// Adapter implements modeladapter.Completer for the Chat Completions API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter. The baseURL includes the API version segment,
// e.g. "https://api.openai.com/v1", with no trailing slash.
func New(baseURL, apiKey, model string) *Adapter {
	a := &Adapter{}
	a.BaseURL = baseURL
	a.Auth = modeladapter.Auth{Key: apiKey}
	a.Name = model

	return a
}

// Complete sends the conversation and returns the first choice as an
// assistant message. Its text is exactly what the API reported.
func (a *Adapter) Complete(ctx context.Context, c *chat.Chat) (message.Message, error) {
	req := a.buildRequest(c)

	var resp apiResponse
	if err := a.PostJSON(ctx, completionsPath, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("openai: %w", err)
	}

	if resp.Error != nil {
		return message.Message{}, fmt.Errorf("openai: api error: %s", resp.Error.Message)
	}

	a.Usage.Add(usage.TokenCount{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	})

	if len(resp.Choices) == 0 {
		return message.Message{}, fmt.Errorf("openai: empty choices in response")
	}

	msg := a.parseChoice(resp.Choices[0])
	if resp.Model != "" {
		msg.SetMeta("model", resp.Model)
	}

	return msg, nil
}

// --- request types ---

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- response types ---

type apiResponse struct {
	Model   string      `json:"model"`
	Choices []apiChoice `json:"choices"`
	Usage   apiUsage    `json:"usage"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiChoice struct {
	Message      apiRespMessage `json:"message"`
	FinishReason string         `json:"finish_reason"`
}

type apiRespMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
	Refusal *string `json:"refusal,omitempty"`
}

type apiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// --- conversion helpers ---

func (a *Adapter) buildRequest(c *chat.Chat) apiRequest {
	req := apiRequest{
		Model:     a.Name,
		MaxTokens: a.MaxTokens,
		Messages:  make([]apiMessage, 0, c.Len()),
	}

	if a.Temperature != 0 {
		t := a.Temperature
		req.Temperature = &t
	}

	for _, m := range c.Messages() {
		req.Messages = append(req.Messages, apiMessage{
			Role:    m.Role.String(),
			Content: m.TextContent(),
		})
	}

	return req
}

func (a *Adapter) parseChoice(choice apiChoice) message.Message {
	var parts []content.Part

	if choice.Message.Content != nil {
		parts = append(parts, content.Text{Text: *choice.Message.Content})
	}

	if choice.Message.Refusal != nil && *choice.Message.Refusal != "" {
		parts = append(parts, content.Refusal{Reason: *choice.Message.Refusal})
	}

	msg := message.New(a.Name, role.Assistant, parts...)
	if choice.FinishReason != "" {
		msg.SetMeta("finish_reason", choice.FinishReason)
	}

	return msg
}
