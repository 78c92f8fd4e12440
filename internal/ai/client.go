package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds the blocking provider call. No retry is
// attempted on expiry.
const DefaultTimeout = 60 * time.Second

// maxErrorBody caps how much of an error response body is carried in
// an AIProviderError.
const maxErrorBody = 200

// AIProviderError reports a failed provider call: a non-success HTTP
// status, a transport failure, or an unusable response. StatusCode is
// zero when no response was received.
type AIProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *AIProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API request failed: HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s API request failed: %v", e.Provider, e.Err)
}

func (e *AIProviderError) Unwrap() error { return e.Err }

// MissingKeyError indicates that no API key is configured for the
// selected provider.
type MissingKeyError struct {
	Provider string
	EnvVar   string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("API key not configured for %s (set %s)", e.Provider, e.EnvVar)
}

// ErrUnparsableResponse is wrapped when the provider answered
// successfully but the text could not be decoded into entries. The
// caller is expected to fall back to keyword classification.
var ErrUnparsableResponse = fmt.Errorf("response is not a well-formed entry list")

// Client sends batched classification requests to one provider.
type Client struct {
	Provider   Provider
	HTTPClient *http.Client
	Params     GenerationParams
	// MaxDiffChars caps diff content embedded in the prompt.
	MaxDiffChars int
}

// NewClient builds a client for the named provider. The API key is
// resolved from the environment at call time, so a dry run never needs
// one.
func NewClient(name string, params GenerationParams, maxDiffChars int) (*Client, error) {
	provider, err := NewProvider(name)
	if err != nil {
		return nil, err
	}

	return &Client{
		Provider:     provider,
		HTTPClient:   &http.Client{Timeout: DefaultTimeout},
		Params:       params,
		MaxDiffChars: maxDiffChars,
	}, nil
}

// Generate sends the batch to the provider and decodes the answer into
// classified entries. A non-success status or transport failure yields
// an AIProviderError. A success response whose text cannot be decoded
// yields ErrUnparsableResponse (wrapped); the run should then degrade
// to keyword classification instead of failing.
func (c *Client) Generate(ctx context.Context, batch Batch) ([]Entry, error) {
	key := os.Getenv(c.Provider.KeyEnv())
	if key == "" {
		return nil, &MissingKeyError{Provider: c.Provider.Name(), EnvVar: c.Provider.KeyEnv()}
	}

	prompt := BuildPrompt(batch, c.MaxDiffChars)

	req, err := c.Provider.BuildRequest(ctx, key, prompt, c.Params)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &AIProviderError{Provider: c.Provider.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AIProviderError{Provider: c.Provider.Name(), StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AIProviderError{
			Provider:   c.Provider.Name(),
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxErrorBody),
		}
	}

	text, err := c.Provider.ParseResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}

	entries, err := DecodeEntries(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	return entries, nil
}

// DryRun renders what Generate would send, without sending it. The API
// key is redacted. Used by --dry-run, which makes provider errors
// unreachable by construction.
func (c *Client) DryRun(batch Batch) (string, error) {
	prompt := BuildPrompt(batch, c.MaxDiffChars)

	req, err := c.Provider.BuildRequest(context.Background(), "REDACTED", prompt, c.Params)
	if err != nil {
		return "", err
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return "", fmt.Errorf("reading request body: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", req.Method, req.URL)
	for name, values := range req.Header {
		if name == "Authorization" {
			fmt.Fprintf(&b, "%s: Bearer REDACTED\n", name)
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(values, ", "))
	}
	b.WriteString("\n")
	b.Write(body)
	return b.String(), nil
}

// DecodeEntries parses the model's text into entries. Markdown code
// fences around the JSON are tolerated, as are entries with unknown
// fields; entries missing a summary are rejected.
func DecodeEntries(text string) ([]Entry, error) {
	cleaned := stripFences(strings.TrimSpace(text))

	var entries []Entry
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		return nil, fmt.Errorf("decoding entry list: %w", err)
	}

	for i, e := range entries {
		if strings.TrimSpace(e.Summary) == "" {
			return nil, fmt.Errorf("entry %d has no summary", i)
		}
	}
	return entries, nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	if i := strings.LastIndex(text, "```"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
