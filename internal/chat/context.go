package chat

import (
	"context"

	"chatkiosk/internal/ai"
)

// Persona is the fixed system turn prepended to every model context.
// It lives in code, not in the event log.
const Persona = "You are a friendly, concise assistant for a public chat kiosk. " +
	"Answer in plain language and keep replies short. If you are unsure, say so."

// BuildContext reconstructs the conversational context for a user:
// the most recent `window` events re-ordered oldest-first, chat turns
// only, with the persona prepended. Annotations stay in the log for
// the admin surface but are never fed to the model. Output length is
// at most window+1.
func (s *Service) BuildContext(ctx context.Context, userID string, window int) ([]ai.Message, error) {
	recent, err := s.repo.Recent(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	msgs := make([]ai.Message, 0, len(recent)+1)
	msgs = append(msgs, ai.Message{Role: "system", Content: Persona})
	for i := len(recent) - 1; i >= 0; i-- {
		ev := recent[i]
		switch ev.Kind {
		case KindChatUser:
			msgs = append(msgs, ai.Message{Role: "user", Content: ev.Content})
		case KindChatLLM:
			msgs = append(msgs, ai.Message{Role: "assistant", Content: ev.Content})
		}
	}
	return msgs, nil
}
