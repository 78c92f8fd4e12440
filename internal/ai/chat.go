package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// chatProvider covers every backend speaking the OpenAI chat
// completions dialect: Bearer auth, messages array, choices response.
type chatProvider struct {
	name   string
	keyEnv string
	url    string
	model  string
}

func (p *chatProvider) Name() string   { return p.name }
func (p *chatProvider) KeyEnv() string { return p.keyEnv }
func (p *chatProvider) Model() string  { return p.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

func (p *chatProvider) BuildRequest(ctx context.Context, apiKey string, prompt Prompt, params GenerationParams) (*http.Request, error) {
	payload := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxOutputTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s payload: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", p.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return req, nil
}

func (p *chatProvider) ParseResponse(body []byte) (string, error) {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding %s response: %w", p.name, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", p.name)
	}
	return parsed.Choices[0].Message.Content, nil
}

// OpenAI targets the OpenAI chat completions API.
type OpenAI struct {
	chatProvider
}

// NewOpenAI returns an OpenAI provider with the default model.
func NewOpenAI() *OpenAI {
	return &OpenAI{chatProvider{
		name:   "openai",
		keyEnv: "OPENAI_API_KEY",
		url:    "https://api.openai.com/v1/chat/completions",
		model:  "gpt-4o",
	}}
}

// DeepSeek targets the DeepSeek chat completions API, which is
// wire-compatible with OpenAI's.
type DeepSeek struct {
	chatProvider
}

// NewDeepSeek returns a DeepSeek provider with the default model.
func NewDeepSeek() *DeepSeek {
	return &DeepSeek{chatProvider{
		name:   "deepseek",
		keyEnv: "DEEPSEEK_API_KEY",
		url:    "https://api.deepseek.com/v1/chat/completions",
		model:  "deepseek-chat",
	}}
}

// SetURL overrides the endpoint, for tests.
func (p *chatProvider) SetURL(url string) { p.url = url }
