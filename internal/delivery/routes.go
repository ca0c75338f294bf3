package delivery

import (
	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"

	"github.com/ekazakov/dictvoice/internal/ports"
)

func RegisterRoutes(
	r chi.Router,
	hAudio *AudioHandler,
	hInfo *InfoHandler,
	guard ports.KeyGuard,
) {
	// --- open ---
	r.With(httputil.RecoverMiddleware).
		Get("/info", hInfo.Info)

	// --- protected ---
	r.Route("/audio", func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			KeyAuthMiddleware(guard),
		)

		pr.Get("/{word}", hAudio.GetAudio)
	})
}
