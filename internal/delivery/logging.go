package delivery

import (
	"net/http"
	"regexp"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/google/uuid"
)

var keyParamRe = regexp.MustCompile(`([?&]key=)[^&\s]*`)

// redactURI masks the key query parameter so request log lines never carry
// the full credential.
func redactURI(uri string) string {
	return keyParamRe.ReplaceAllString(uri, "${1}REDACTED")
}

// RequestLogger logs one line per request with a short correlation id.
func RequestLogger(log *logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()[:8]
			log.Log(logger.LogEntry{
				Level:   "info",
				Message: r.Method + " " + redactURI(r.URL.RequestURI()) + " [" + id + "]",
			})
			next.ServeHTTP(w, r)
		})
	}
}
