package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Abhishek200416/p2/internal/apperr"
)

// Chat is one conversational context against the LLM provider.
type Chat interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// ChatFactory creates feature-area chats. The facade holds one chat per
// feature name and reuses it across requests.
type ChatFactory interface {
	NewChat(systemMessage string) (Chat, error)
	IsConfigured() bool
}

// GeminiClient wraps the Gemini API behind ChatFactory. An empty API key
// yields an unconfigured client; AI endpoints then degrade instead of
// failing startup.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return &GeminiClient{model: model}, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client init: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) IsConfigured() bool {
	return g.client != nil
}

func (g *GeminiClient) NewChat(systemMessage string) (Chat, error) {
	if g.client == nil {
		return nil, errors.New("gemini client not configured")
	}
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemMessage)}}
	return &geminiChat{session: model.StartChat()}, nil
}

func (g *GeminiClient) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

type geminiChat struct {
	session *genai.ChatSession
}

func (c *geminiChat) Send(ctx context.Context, prompt string) (string, error) {
	resp, err := c.session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: empty response", apperr.ErrUpstream)
	}
	return sb.String(), nil
}
