package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/ekazakov/dictvoice/internal/delivery"
	"github.com/ekazakov/dictvoice/internal/domain"
	"github.com/ekazakov/dictvoice/internal/ports"
	"github.com/ekazakov/dictvoice/internal/stardict"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const apiKeyEnv = "API_KEY"

func main() {

	// =========================================================================
	// ENV INIT
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv(apiKeyEnv) == "" {
		log.Fatalf("%s is not set", apiKeyEnv)
	}

	dictIfo := os.Getenv("DICT_IFO")
	if dictIfo == "" {
		dictIfo = "data/dict.ifo"
	}
	soundIfo := os.Getenv("SOUND_IFO")
	if soundIfo == "" {
		soundIfo = "data/sound.ifo"
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// ARCHIVE ENGINES
	// =========================================================================

	// A missing archive is critical but not fatal: the process stays up and
	// audio requests answer 500 until it is fixed.
	var textEngine, soundEngine ports.ArchiveEngine

	if a, err := stardict.Open(dictIfo); err != nil {
		zl.Log(logger.LogEntry{Level: "error", Message: "failed to load text archive " + dictIfo, Error: err})
	} else {
		textEngine = a
		defer a.Close()
		zl.Log(logger.LogEntry{
			Level: "info",
			Message: "loaded " + a.Name() + " (" + strconv.FormatInt(a.WordCount(), 10) +
				" words, " + humanize.Bytes(uint64(a.DataSize())) + ")",
		})
	}

	if a, err := stardict.Open(soundIfo); err != nil {
		zl.Log(logger.LogEntry{Level: "error", Message: "failed to load sound archive " + soundIfo, Error: err})
	} else {
		soundEngine = a
		defer a.Close()
		zl.Log(logger.LogEntry{
			Level: "info",
			Message: "loaded " + a.Name() + " (" + strconv.FormatInt(a.WordCount(), 10) +
				" clips, " + humanize.Bytes(uint64(a.DataSize())) + ")",
		})
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	keyGuard := domain.NewKeyGuard(apiKeyEnv, zl)
	audioService := domain.NewAudioService(textEngine, soundEngine, zl)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "X-API-Key"},
	}))
	r.Use(delivery.RequestLogger(zl))

	// HANDLERS
	audioHandler := delivery.NewAudioHandler(audioService, zl)
	infoHandler := delivery.NewInfoHandler()

	// ROUTES
	delivery.RegisterRoutes(r, audioHandler, infoHandler, keyGuard)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "dictvoice",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
