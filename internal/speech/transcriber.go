package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Transcriber turns spoken audio into text by posting the raw bytes
// to a whisper.cpp server. Audio input is central to the request it
// arrives on, so callers treat a failure here as a hard error.
type Transcriber struct {
	URL    string
	Client *http.Client
}

func NewTranscriber(url string) *Transcriber {
	return &Transcriber{
		URL:    strings.TrimRight(url, "/"),
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (t *Transcriber) Configured() bool {
	return strings.TrimSpace(t.URL) != ""
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if !t.Configured() {
		return "", errors.New("transcription not configured")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(audio); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL+"/inference", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("whisper: status %d", resp.StatusCode)
	}

	var decoded struct {
		Text  string `json:"text"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.Error != "" {
		return "", errors.New(decoded.Error)
	}
	return strings.TrimSpace(decoded.Text), nil
}
