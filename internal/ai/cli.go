package ai

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CLIBackend shells out to a local ollama binary. The CLI takes plain
// text rather than a message array, so the turns are rendered into a
// flat prompt first.
type CLIBackend struct {
	Bin     string
	Timeout time.Duration
}

func NewCLIBackend(bin string) *CLIBackend {
	if bin == "" {
		bin = "ollama"
	}
	return &CLIBackend{Bin: bin, Timeout: 90 * time.Second}
}

func (b *CLIBackend) Name() string { return "ollama-cli" }

func (b *CLIBackend) Available(ctx context.Context) bool {
	_, err := exec.LookPath(b.Bin)
	return err == nil
}

func (b *CLIBackend) Generate(ctx context.Context, model string, messages []Message) (string, error) {
	if _, err := exec.LookPath(b.Bin); err != nil {
		return "", fmt.Errorf("ollama binary not found: %w", err)
	}

	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, b.Bin, "run", model)
	cmd.Stdin = strings.NewReader(RenderPrompt(messages))
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("ollama run: %s", msg)
	}

	reply := strings.TrimSpace(out.String())
	if reply == "" {
		return "", fmt.Errorf("ollama run: empty output")
	}
	return reply, nil
}

// RenderPrompt flattens role-tagged turns for backends that accept
// only plain text. The system turn leads, then the dialogue with
// speaker labels, ending with an open assistant turn.
func RenderPrompt(messages []Message) string {
	var sb strings.Builder
	for _, m := range messages {
		switch m.Role {
		case "system":
			sb.WriteString(m.Content)
		case "assistant":
			sb.WriteString("Assistant: ")
			sb.WriteString(m.Content)
		default:
			sb.WriteString("User: ")
			sb.WriteString(m.Content)
		}
		sb.WriteString("\n\n")
	}
	sb.WriteString("Assistant:")
	return sb.String()
}
