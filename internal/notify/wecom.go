// Package notify pushes rendered changelogs to a WeChat Work (企业微信)
// group chat webhook robot. Delivery is one-way fire-and-forget from
// the pipeline's point of view: a failed push is reported but never
// fails changelog generation.
//
// Reference: https://developer.work.weixin.qq.com/document/path/91770
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// WebhookURLEnv is the environment variable carrying the webhook URL
// when no --webhook-url flag is given.
const WebhookURLEnv = "WECOM_WEBHOOK_URL"

// MaxMessageBytes is the WeChat Work markdown message size limit.
const MaxMessageBytes = 4096

// Sender delivers markdown messages to a single webhook endpoint.
type Sender struct {
	URL        string
	HTTPClient *http.Client
}

// NewSender returns a Sender for the given webhook URL.
func NewSender(url string) *Sender {
	return &Sender{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type wecomMessage struct {
	MsgType  string        `json:"msgtype"`
	Markdown wecomMarkdown `json:"markdown"`
}

type wecomMarkdown struct {
	Content string `json:"content"`
}

type wecomResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// Send pushes markdown content to the webhook, truncating it to the
// WeChat Work message limit first. The API reports errors in-band via
// errcode, so a 200 response is not sufficient for success.
func (s *Sender) Send(content string) error {
	if s.URL == "" {
		return fmt.Errorf("webhook URL is not configured")
	}

	payload := wecomMessage{
		MsgType:  "markdown",
		Markdown: wecomMarkdown{Content: Truncate(content, MaxMessageBytes)},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}

	var result wecomResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding webhook response: %w", err)
	}
	if result.ErrCode != 0 {
		return fmt.Errorf("webhook API error %d: %s", result.ErrCode, result.ErrMsg)
	}
	return nil
}

// Truncate caps content at maxBytes bytes, preferring to cut at a
// newline boundary and appending a truncation notice. Content within
// the limit is returned unchanged.
func Truncate(content string, maxBytes int) string {
	if len(content) <= maxBytes {
		return content
	}

	// Leave room for the truncation notice.
	target := maxBytes - 100
	truncated := content
	for len(truncated) > target {
		cut := len(truncated) - 100
		if cut < 0 {
			cut = 0
		}
		truncated = trimToRuneBoundary(truncated[:cut])
	}

	if i := strings.LastIndexByte(truncated, '\n'); i > len(truncated)/2 {
		truncated = truncated[:i]
	}

	return truncated + "\n\n⚠️ 内容过长已截断，完整内容请查看控制台或文件输出"
}

// trimToRuneBoundary backs off a byte slice so it never ends mid-rune.
func trimToRuneBoundary(s string) string {
	for len(s) > 0 && s[len(s)-1]&0xC0 == 0x80 {
		s = s[:len(s)-1]
	}
	return s
}
