package ai

import (
	"fmt"
	"os"

	"github.com/testplanhq/testplan/pkg/domain/ai"
)

// NewProvider builds the named provider. API keys come from the environment;
// a missing key is not an error here; the provider reports it on first use.
func NewProvider(providerName string, modelName string) (ai.Provider, error) {
	switch providerName {
	case "ollama", "":
		return NewOllamaProvider(modelName), nil
	case "mock":
		return &MockProvider{Model: modelName}, nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		return NewOpenAIProvider(modelName, apiKey), nil
	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		return NewAnthropicProvider(modelName, apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", providerName)
	}
}

// DefaultProviderSelection applies the TESTPLAN_AI_PROVIDER and
// TESTPLAN_AI_MODEL environment overrides to a provider selection.
func DefaultProviderSelection(providerName, modelName string) (string, string) {
	if envProvider := os.Getenv("TESTPLAN_AI_PROVIDER"); envProvider != "" {
		providerName = envProvider
	}
	if envModel := os.Getenv("TESTPLAN_AI_MODEL"); envModel != "" {
		modelName = envModel
	}
	return providerName, modelName
}

// GetDefaultProvider returns a provider honoring environment overrides.
func GetDefaultProvider(providerName, modelName string) (ai.Provider, error) {
	return NewProvider(DefaultProviderSelection(providerName, modelName))
}

// CredentialsPresent reports whether the named provider can be used right
// now. Hosted providers need their API key in the environment; local and
// mock providers are always available.
func CredentialsPresent(providerName string) bool {
	switch providerName {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY") != ""
	case "openai":
		return os.Getenv("OPENAI_API_KEY") != ""
	case "ollama", "mock", "":
		return true
	default:
		return false
	}
}
