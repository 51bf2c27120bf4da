package llm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaBackend adapts the teacher's Ollama dependency into a streaming
// Backend, selected by Config.LLMProvider == "ollama". Unlike
// RawServerBackend it speaks Ollama's native chat endpoint rather than the
// llama.cpp completion wire format: Stream sends the rendered prompt string
// as the sole user message of a chat request.
type OllamaBackend struct {
	client *api.Client
	model  string
}

// NewOllamaBackend builds an OllamaBackend against host (e.g.
// "http://localhost:11434").
func NewOllamaBackend(host, model string) (*OllamaBackend, error) {
	parsed, err := url.Parse(strings.TrimSuffix(host, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host: %w", err)
	}
	return &OllamaBackend{client: api.NewClient(parsed, nil), model: model}, nil
}

// Stream issues a streaming chat completion and adapts each partial message
// into an Event, closing the channel once Ollama reports Done.
func (b *OllamaBackend) Stream(ctx context.Context, prompt string) (<-chan Event, error) {
	stream := true
	events := make(chan Event)

	go func() {
		defer close(events)
		err := b.client.Chat(ctx, &api.ChatRequest{
			Model:    b.model,
			Messages: []api.Message{{Role: "user", Content: prompt}},
			Stream:   &stream,
		}, func(resp api.ChatResponse) error {
			select {
			case events <- Event{Content: resp.Message.Content, Stop: resp.Done}:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})
		if err != nil && ctx.Err() == nil {
			select {
			case events <- Event{Stop: true}:
			default:
			}
		}
	}()

	return events, nil
}
