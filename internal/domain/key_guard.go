package domain

import (
	"os"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/ekazakov/dictvoice/internal/ports"
)

type keyGuard struct {
	envVar string
	log    *logger.ZapLogger
}

// NewKeyGuard validates presented API keys against the secret held in the
// given environment variable. The variable is re-read on every request, so a
// rotated key takes effect without a restart.
func NewKeyGuard(envVar string, log *logger.ZapLogger) ports.KeyGuard {
	return &keyGuard{envVar: envVar, log: log}
}

func (g *keyGuard) Validate(headerKey, queryKey string) error {
	presented := headerKey
	if presented == "" {
		presented = queryKey
	}

	expected := os.Getenv(g.envVar)
	if presented == "" || presented != expected {
		g.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "api key mismatch: got " + hint(presented) + ", want " + hint(expected),
		})
		return ports.ErrForbidden
	}
	return nil
}

// hint truncates a secret to its first four characters for log output.
func hint(s string) string {
	if s == "" {
		return "<empty>"
	}
	// Cut on rune boundaries so non-ASCII secrets stay valid UTF-8.
	r := []rune(s)
	if len(r) > 4 {
		return string(r[:4]) + "..."
	}
	return s
}
