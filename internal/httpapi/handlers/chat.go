package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatkiosk/internal/chat"
)

const maxUploadBytes = 16 << 20

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}

// Bot handles one chat turn. Input can be typed text, an uploaded
// audio clip, an uploaded image, or a combination. The response is
// always {"reply": ...} once past input validation; backend trouble
// degrades to a placeholder reply rather than an error.
func (h *Handler) Bot(c *gin.Context) {
	userID, err := c.Cookie(UserCookie)
	if err != nil || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user cookie; accept cookies first"})
		return
	}

	in := chat.Input{
		Message: c.PostForm("message"),
		Model:   c.PostForm("model"),
		Reason:  c.PostForm("mode") == "reason",
	}

	if fh, ferr := c.FormFile("audio"); ferr == nil {
		data, rerr := readUpload(fh)
		if rerr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read audio upload"})
			return
		}
		text, terr := h.Transcriber.Transcribe(c.Request.Context(), data)
		if terr != nil {
			// Audio was the input; without the transcription there is
			// nothing to answer.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "audio transcription failed", "detail": terr.Error()})
			return
		}
		in.Transcribed = text
	}

	if fh, ferr := c.FormFile("image"); ferr == nil {
		if data, rerr := readUpload(fh); rerr == nil {
			caption, cerr := h.Captioner.Caption(c.Request.Context(), data)
			if cerr != nil {
				// Captioning is best-effort; continue with whatever
				// other input exists.
				slog.Warn("image captioning failed", "err", cerr)
			} else {
				in.ImageCaption = caption
			}
		}
	}

	reply, memory, err := h.ChatSvc.Handle(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, chat.ErrNoInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No input provided"})
			return
		}
		slog.Error("chat turn failed", "user", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply, "memory": memory})
}

// Annotate appends a free-form annotation event for the cookie user.
func (h *Handler) Annotate(c *gin.Context) {
	userID, err := c.Cookie(UserCookie)
	if err != nil || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user cookie; accept cookies first"})
		return
	}

	content := c.PostForm("content")
	if content == "" {
		var body struct {
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			content = body.Content
		}
	}
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no content provided"})
		return
	}

	if err := h.ChatSvc.Annotate(c.Request.Context(), userID, content); err != nil {
		slog.Error("annotation failed", "user", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
