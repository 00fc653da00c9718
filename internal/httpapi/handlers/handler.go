package handlers

import (
	"chatkiosk/internal/ai"
	"chatkiosk/internal/chat"
	"chatkiosk/internal/config"
	"chatkiosk/internal/speech"
)

type Handler struct {
	Cfg         config.Config
	Repo        *chat.Repo
	ChatSvc     *chat.Service
	Selector    *ai.Selector
	Transcriber *speech.Transcriber
	Captioner   *speech.Captioner
	Synth       *speech.Synthesizer
}

func New(cfg config.Config, repo *chat.Repo, svc *chat.Service, sel *ai.Selector,
	tr *speech.Transcriber, cap *speech.Captioner, synth *speech.Synthesizer) *Handler {
	return &Handler{
		Cfg:         cfg,
		Repo:        repo,
		ChatSvc:     svc,
		Selector:    sel,
		Transcriber: tr,
		Captioner:   cap,
		Synth:       synth,
	}
}
