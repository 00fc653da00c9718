package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatkiosk/internal/speech"
)

// TTS synthesizes a WAV clip for the given text.
func (h *Handler) TTS(c *gin.Context) {
	text := speech.CleanText(c.PostForm("text"))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	wav, err := h.Synth.Synthesize(c.Request.Context(), text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "TTS error: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=tts.wav`)
	c.Data(http.StatusOK, "audio/wav", wav)
}
