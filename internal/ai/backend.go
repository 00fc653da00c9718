package ai

import "context"

// Message is one role-tagged turn handed to a backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Backend is an interchangeable generation provider. Available is a
// cheap capability probe so the status endpoint can report
// reachability without performing a generation call.
type Backend interface {
	Name() string
	Available(ctx context.Context) bool
	Generate(ctx context.Context, model string, messages []Message) (string, error)
}
