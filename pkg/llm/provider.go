package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any LLM backend. The favorites core
// treats it as potentially slow and potentially malformed; parsing of its
// output happens behind a strict parse-or-fail boundary, never here.
type Provider interface {
	// Chat sends a chat history to the model and returns the response text.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single user prompt (convenience method).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
