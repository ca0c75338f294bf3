package delivery

import (
	"net/http"

	"github.com/goccy/go-json"
)

type InfoHandler struct{}

func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

// Info echoes back how the request arrived, useful behind a reverse proxy.
func (h *InfoHandler) Info(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"connecting_ip": r.Header.Get("X-Real-IP"),
		"proxy_ip":      r.Header.Get("X-Forwarded-For"),
		"host":          r.Host,
		"user_agent":    r.UserAgent(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
