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

// RemoteBackend posts to an OpenAI-compatible chat completion
// endpoint (OpenRouter, a hosted vLLM, etc).
type RemoteBackend struct {
	BaseURL string
	APIKey  string
	SiteURL string
	AppName string
	Client  *http.Client
}

func NewRemoteBackend(baseURL, apiKey, siteURL, appName string) *RemoteBackend {
	return &RemoteBackend{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		SiteURL: siteURL,
		AppName: appName,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (b *RemoteBackend) Name() string { return "remote-http" }

// Available means configured; no network round trip is made for a
// remote endpoint.
func (b *RemoteBackend) Available(ctx context.Context) bool {
	return strings.TrimSpace(b.BaseURL) != ""
}

type remoteChatReq struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type remoteChatResp struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (b *RemoteBackend) Generate(ctx context.Context, model string, messages []Message) (string, error) {
	if strings.TrimSpace(b.BaseURL) == "" {
		return "", errors.New("remote: endpoint not configured")
	}
	if b.Client == nil {
		return "", errors.New("remote: http client is nil")
	}

	body, err := json.Marshal(remoteChatReq{Model: model, Messages: messages, Stream: false})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if b.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.APIKey)
	}
	if b.SiteURL != "" {
		req.Header.Set("HTTP-Referer", b.SiteURL)
	}
	if b.AppName != "" {
		req.Header.Set("X-Title", b.AppName)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		m := strings.TrimSpace(string(msg))
		if m == "" {
			m = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("remote: %s", m)
	}

	var decoded remoteChatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", errors.New(decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("remote: empty response")
	}
	return decoded.Choices[0].Message.Content, nil
}
