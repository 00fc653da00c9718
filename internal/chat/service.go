package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chatkiosk/internal/ai"
)

// ErrNoInput is returned when a request carries neither text, a
// transcription, nor an image caption. Nothing is logged in that
// case.
var ErrNoInput = errors.New("no input provided")

// Input is everything one chat turn can carry after the transport
// layer has decoded uploads into text.
type Input struct {
	Message      string // typed text
	Transcribed  string // speech-to-text result, used when no typed text
	ImageCaption string // image description, may accompany or replace text
	Model        string // optional model override
	Reason       bool   // route to the reasoning model
}

// Service is the generation dispatcher: it owns the append → build →
// dispatch → append cycle for a chat turn.
type Service struct {
	repo        *Repo
	selector    *ai.Selector
	window      int
	chatModel   string
	reasonModel string
}

func NewService(repo *Repo, selector *ai.Selector, window int, chatModel, reasonModel string) *Service {
	if window <= 0 || window > 100 {
		window = 20
	}
	return &Service{
		repo:        repo,
		selector:    selector,
		window:      window,
		chatModel:   chatModel,
		reasonModel: reasonModel,
	}
}

// Handle runs one full chat turn: log the user input, rebuild the
// bounded context, dispatch to a backend, log the reply. The reply is
// logged even when it is a synthetic placeholder, so the transcript
// never has a gap. Only input validation and storage failures abort
// the turn. The dispatched context is returned alongside the reply so
// the chat surface can echo it for debugging.
func (s *Service) Handle(ctx context.Context, userID string, in Input) (string, []ai.Message, error) {
	text := strings.TrimSpace(in.Message)
	if text == "" {
		text = strings.TrimSpace(in.Transcribed)
	}
	caption := strings.TrimSpace(in.ImageCaption)
	if text == "" && caption == "" {
		return "", nil, ErrNoInput
	}

	logged := text
	if logged == "" {
		logged = "[image only] caption:" + caption
	}
	if _, err := s.repo.Append(ctx, userID, KindChatUser, logged); err != nil {
		return "", nil, fmt.Errorf("store user turn: %w", err)
	}

	// The just-logged user turn is inside the window, so the context
	// already ends with it. An image alongside text gets its own
	// extra turn; a caption-only input is already the logged marker.
	msgs, err := s.BuildContext(ctx, userID, s.window)
	if err != nil {
		return "", nil, fmt.Errorf("build context: %w", err)
	}
	if text != "" && caption != "" {
		msgs = append(msgs, ai.Message{Role: "user", Content: "[Image description]: " + caption})
	}

	model := strings.TrimSpace(in.Model)
	if model == "" {
		model = s.chatModel
		if in.Reason {
			model = s.reasonModel
		}
	}

	reply := s.selector.Dispatch(ctx, model, msgs)

	if _, err := s.repo.Append(ctx, userID, KindChatLLM, reply); err != nil {
		return "", nil, fmt.Errorf("store assistant turn: %w", err)
	}
	return reply, msgs, nil
}

// Annotate appends a free-form annotation event. Annotations show up
// in the admin transcript but never in model context.
func (s *Service) Annotate(ctx context.Context, userID, content string) error {
	_, err := s.repo.Append(ctx, userID, KindAnnotation, content)
	return err
}

// Models reports the resolved defaults for the status endpoint.
func (s *Service) Models() (chatModel, reasonModel string) {
	return s.chatModel, s.reasonModel
}
