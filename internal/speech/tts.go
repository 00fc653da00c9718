package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// Synthesizer renders speech with the piper CLI. The voice model file
// must exist on disk; piper writes WAV to stdout when the output file
// is "-".
type Synthesizer struct {
	Bin     string
	Voice   string
	Timeout time.Duration
}

func NewSynthesizer(bin, voice string) *Synthesizer {
	if bin == "" {
		bin = "piper"
	}
	return &Synthesizer{Bin: bin, Voice: voice, Timeout: 30 * time.Second}
}

var ttsSanitize = regexp.MustCompile(`[^\w\s.,!?-]`)

// CleanText strips characters the voice model chokes on, keeping
// words and basic punctuation.
func CleanText(text string) string {
	return strings.TrimSpace(ttsSanitize.ReplaceAllString(text, ""))
}

func (s *Synthesizer) Configured() bool {
	if _, err := exec.LookPath(s.Bin); err != nil {
		return false
	}
	_, err := os.Stat(s.Voice)
	return err == nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if _, err := os.Stat(s.Voice); err != nil {
		return nil, errors.New("TTS voice model not found")
	}
	if _, err := exec.LookPath(s.Bin); err != nil {
		return nil, errors.New("piper binary not found")
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, s.Bin, "--model", s.Voice, "--output_file", "-")
	cmd.Stdin = strings.NewReader(text)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("piper: %s", msg)
	}
	return out.Bytes(), nil
}
