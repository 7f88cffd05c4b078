package factory

import (
	"fmt"

	"babyname-be/pkg/llm"
	"babyname-be/pkg/llm/ollama"
	"babyname-be/pkg/llm/openai"
)

// NewProvider builds an LLM provider from configuration.
func NewProvider(provider, model, openAIKey, ollamaBaseURL string) (llm.Provider, error) {
	switch provider {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return openai.NewOpenAIProvider(openAIKey, model), nil
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
