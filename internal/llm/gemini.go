// Package llm wraps the Gemini text generation API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("empty response from Gemini")

// Gemini generates text with the Gemini API. The client is created lazily
// on first use and reused afterwards.
type Gemini struct {
	apiKey  string
	timeout time.Duration

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// NewGemini creates a generator for apiKey. A zero timeout disables the
// per-call deadline.
func NewGemini(apiKey string, timeout time.Duration) *Gemini {
	return &Gemini{apiKey: apiKey, timeout: timeout}
}

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		if g.apiKey == "" {
			g.clientErr = fmt.Errorf("GEMINI_API_KEY not set")
			return
		}
		g.client, g.clientErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return g.client, g.clientErr
}

// Generate sends prompt to model and returns the reply text.
func (g *Gemini) Generate(ctx context.Context, model, prompt string) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
