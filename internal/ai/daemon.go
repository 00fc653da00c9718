package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DaemonBackend talks to a locally running ollama daemon over HTTP.
type DaemonBackend struct {
	BaseURL string
	Client  *http.Client
}

func NewDaemonBackend(baseURL string) *DaemonBackend {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &DaemonBackend{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (b *DaemonBackend) Name() string { return "ollama-daemon" }

// Available probes the daemon's tag listing with a short deadline.
func (b *DaemonBackend) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := b.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

type daemonChatReq struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

func (b *DaemonBackend) Generate(ctx context.Context, model string, messages []Message) (string, error) {
	if b.Client == nil {
		return "", errors.New("daemon: http client is nil")
	}

	body, err := json.Marshal(daemonChatReq{Model: model, Messages: messages, Stream: false})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("daemon: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &e); err == nil && e.Error != "" {
		return "", errors.New(e.Error)
	}

	reply := strings.TrimSpace(ParseReply(raw))
	if reply == "" {
		return "", errors.New("daemon: empty reply")
	}
	return reply, nil
}

// replyKeys are the flat field names daemons have been seen to use
// for the generated text, tried in priority order after the chat
// shape.
var replyKeys = []string{"response", "text", "content"}

// ParseReply extracts generated text from a daemon reply body. It
// tries the chat shape (message.content) first, then each known flat
// key, and finally falls back to the truncated raw JSON so the caller
// always gets something displayable.
func ParseReply(raw []byte) string {
	var chatShape struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(raw, &chatShape); err == nil && chatShape.Message.Content != "" {
		return chatShape.Message.Content
	}

	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err == nil {
		for _, k := range replyKeys {
			if v, ok := flat[k].(string); ok && v != "" {
				return v
			}
		}
	}

	s := string(raw)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
