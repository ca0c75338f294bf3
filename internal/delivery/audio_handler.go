package delivery

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/ekazakov/dictvoice/internal/ports"
)

// mimeTypes maps supported clip extensions to response content types.
var mimeTypes = map[string]string{
	"mp3": "audio/mpeg",
	"spx": "audio/speex",
	"wav": "audio/wav",
	"ogg": "audio/ogg",
}

type AudioHandler struct {
	audio ports.AudioService
	log   *logger.ZapLogger
}

func NewAudioHandler(audio ports.AudioService, log *logger.ZapLogger) *AudioHandler {
	return &AudioHandler{
		audio: audio,
		log:   log,
	}
}

func (h *AudioHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	// chi hands back the raw segment only when the URL carried non-canonical
	// escapes (RawPath set); otherwise the param is already decoded and a
	// second unescape would mangle words containing percent sequences.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(word); err == nil {
			word = unescaped
		}
	}

	data, ext, err := h.audio.Resolve(r.Context(), word)
	switch {
	case errors.Is(err, ports.ErrNotInitialized):
		h.log.Log(logger.LogEntry{Level: "error", Message: "engines not initialized", Error: err})
		http.Error(w, "engines not initialized", http.StatusInternalServerError)
		return
	case errors.Is(err, ports.ErrNotFound):
		http.Error(w, "no audio for "+word, http.StatusNotFound)
		return
	case err != nil:
		h.log.Log(logger.LogEntry{Level: "error", Message: "audio lookup failed", Error: err})
		http.Error(w, "lookup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	mime, ok := mimeTypes[ext]
	if !ok {
		mime = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mime)
	_, _ = w.Write(data)
}
