// Package llm wraps the OpenAI completion API used by the commit and chat
// commands.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultModel = "gpt-4o-mini"

// APIKeyEnv is the environment variable holding the completion API key.
const APIKeyEnv = "OPENAI_API_KEY"

// Message is one turn of a conversation.
type Message struct {
	Role    string // "system", "user" or "assistant"
	Content string
}

// Client calls the completion API.
type Client struct {
	chat  openai.ChatCompletionService
	model string
}

// NewFromEnv builds a client from the environment. The API key must be set
// and non-empty; CHORE_MODEL optionally overrides the model.
func NewFromEnv() (*Client, error) {
	key := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if key == "" {
		return nil, fmt.Errorf("%s is not set (required for commit and chat)", APIKeyEnv)
	}

	model := strings.TrimSpace(os.Getenv("CHORE_MODEL"))
	if model == "" {
		model = defaultModel
	}

	client := openai.NewClient(option.WithAPIKey(key))
	return &Client{chat: client.Chat.Completions, model: model}, nil
}

// Complete sends a system and user prompt and returns the trimmed reply.
// An empty reply is an error: callers always need text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	completion, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", wrapAPIError(err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion API returned no choices")
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("completion API returned empty text")
	}
	return text, nil
}

// StreamChat streams a reply for the conversation, invoking onDelta for each
// text fragment, and returns the full trimmed reply.
func (c *Client) StreamChat(ctx context.Context, msgs []Message, onDelta func(string)) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs)),
	}
	for _, m := range msgs {
		switch m.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	stream := c.chat.NewStreaming(ctx, params)
	var b strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		b.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}
	if err := stream.Err(); err != nil {
		return "", wrapAPIError(err)
	}
	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", errors.New("completion API returned empty text")
	}
	return reply, nil
}

// wrapAPIError surfaces HTTP status and body when the SDK provides them.
func wrapAPIError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return fmt.Errorf("completion API: status %d: %w", apierr.StatusCode, err)
	}
	return fmt.Errorf("completion API: %w", err)
}
