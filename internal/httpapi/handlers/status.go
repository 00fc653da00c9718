package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AIStatus reports the resolved default models and which backends
// are currently reachable. Probes only, no generation call.
func (h *Handler) AIStatus(c *gin.Context) {
	chatModel, reasonModel := h.ChatSvc.Models()

	backends := gin.H{}
	for _, b := range h.Selector.Backends() {
		backends[b.Name()] = b.Available(c.Request.Context())
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"status": gin.H{
			"default_model":        chatModel,
			"default_reason_model": reasonModel,
			"strict":               h.Selector.Strict(),
			"backends":             backends,
			"transcription":        h.Transcriber.Configured(),
			"captioning":           h.Captioner.Configured(),
			"tts":                  h.Synth.Configured(),
		},
	})
}
