package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Captioner describes images with a multimodal model served by the
// local daemon. Captioning is best-effort: callers degrade to "no
// caption" when it fails.
type Captioner struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewCaptioner(baseURL, model string) *Captioner {
	if model == "" {
		model = "llava:7b"
	}
	return &Captioner{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Captioner) Configured() bool {
	return strings.TrimSpace(c.BaseURL) != ""
}

type captionReq struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
	Stream bool     `json:"stream"`
}

func (c *Captioner) Caption(ctx context.Context, img []byte) (string, error) {
	if !c.Configured() {
		return "", errors.New("captioning not configured")
	}

	body, err := json.Marshal(captionReq{
		Model:  c.Model,
		Prompt: "Describe this image in one short sentence.",
		Images: []string{base64.StdEncoding.EncodeToString(img)},
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("captioner: status %d", resp.StatusCode)
	}

	var decoded struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.Error != "" {
		return "", errors.New(decoded.Error)
	}

	caption := strings.TrimSpace(decoded.Response)
	if caption == "" {
		return "", errors.New("captioner: empty caption")
	}
	return caption, nil
}
