// Package ai implements the LLM-backed classification strategy. A
// Provider knows how to build an authenticated request for one hosted
// backend (Gemini, OpenAI, DeepSeek) and how to pull the generated text
// out of that backend's response envelope; the Client batches the whole
// revision range into a single request and decodes the model's answer
// into classified changelog entries.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"sort"
)

// Entry is one classified change as returned by the model. Hash refers
// to a commit in the batch; the aggregator drops entries naming unknown
// commits. A merged summary covering several commits carries the hash
// of the first one.
type Entry struct {
	Hash     string `json:"hash"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// Prompt is the fully rendered system and user prompt pair for one
// generation request.
type Prompt struct {
	System string
	User   string
}

// GenerationParams are the sampling settings shared by all providers.
type GenerationParams struct {
	Temperature     float64
	MaxOutputTokens int
}

// Provider abstracts one hosted LLM backend. Implementations handle
// endpoint URL and authentication header construction plus
// response-schema parsing; everything else is provider-agnostic.
type Provider interface {
	// Name returns the provider identifier used on the CLI.
	Name() string
	// KeyEnv returns the environment variable holding the API key.
	KeyEnv() string
	// Model returns the model identifier requests are sent to.
	Model() string
	// BuildRequest constructs the authenticated HTTP request carrying
	// the prompt and generation parameters.
	BuildRequest(ctx context.Context, apiKey string, prompt Prompt, params GenerationParams) (*http.Request, error)
	// ParseResponse extracts the generated text from a success
	// response body.
	ParseResponse(body []byte) (string, error)
}

// DefaultProvider is used when no --provider flag is given.
const DefaultProvider = "gemini"

// providers registers one constructor per supported backend.
var providers = map[string]func() Provider{
	"gemini":   func() Provider { return NewGemini() },
	"openai":   func() Provider { return NewOpenAI() },
	"deepseek": func() Provider { return NewDeepSeek() },
}

// NewProvider returns the provider registered under name.
func NewProvider(name string) (Provider, error) {
	ctor, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unsupported AI provider %q (available: %v)", name, ProviderNames())
	}
	return ctor(), nil
}

// ProviderNames returns the supported provider names, sorted.
func ProviderNames() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
