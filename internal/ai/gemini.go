package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// geminiBaseURL is the generateContent endpoint template; the model
// name is interpolated and the API key travels as a query parameter.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini targets Google's Generative Language API.
type Gemini struct {
	// BaseURL may be overridden in tests.
	BaseURL string
	model   string
}

// NewGemini returns a Gemini provider with the default model.
func NewGemini() *Gemini {
	return &Gemini{BaseURL: geminiBaseURL, model: "gemini-3-flash-preview"}
}

func (g *Gemini) Name() string   { return "gemini" }
func (g *Gemini) KeyEnv() string { return "GOOGLE_API_KEY" }
func (g *Gemini) Model() string  { return g.model }

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// BuildRequest constructs the generateContent call. Gemini has no
// system role on this endpoint, so the system prompt is prepended to
// the user prompt.
func (g *Gemini) BuildRequest(ctx context.Context, apiKey string, prompt Prompt, params GenerationParams) (*http.Request, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt.System + "\n\n" + prompt.User}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     params.Temperature,
			MaxOutputTokens: params.MaxOutputTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling gemini payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.BaseURL, g.model, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// ParseResponse extracts the first candidate's text.
func (g *Gemini) ParseResponse(body []byte) (string, error) {
	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
