package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/ekazakov/dictvoice/internal/ports"
)

type audioService struct {
	text  ports.ArchiveEngine
	sound ports.ArchiveEngine
	log   *logger.ZapLogger
}

// NewAudioService builds the lookup pipeline over the text archive and the
// binary resource archive. Either engine may be nil when its archive failed
// to load; Resolve then fails with ports.ErrNotInitialized.
func NewAudioService(text, sound ports.ArchiveEngine, log *logger.ZapLogger) ports.AudioService {
	return &audioService{text: text, sound: sound, log: log}
}

func (s *audioService) Resolve(ctx context.Context, word string) ([]byte, string, error) {
	if s.text == nil || s.sound == nil {
		return nil, "", ports.ErrNotInitialized
	}

	articles, err := s.text.Lookup(ctx, word, true)
	if err != nil {
		return nil, "", fmt.Errorf("text lookup for %q: %w", word, err)
	}
	if len(articles) == 0 {
		s.log.Log(logger.LogEntry{Level: "info", Message: "word not in dictionary: " + word})
		return nil, "", ports.ErrNotFound
	}

	ref, ok := ExtractSoundRef(string(articles[0].Data))
	if !ok {
		s.log.Log(logger.LogEntry{Level: "info", Message: "no sound reference in article for " + word})
		return nil, "", ports.ErrNotFound
	}

	// The resource index is only queried exactly; folded comparison is
	// unreliable over separator-heavy keys.
	key := ResourceKey(ref.Path)
	clips, err := s.sound.Lookup(ctx, key, false)
	if err != nil {
		return nil, "", fmt.Errorf("resource lookup for %q: %w", key, err)
	}

	if len(clips) == 0 {
		// Some archives index resources without the leading separator.
		alt := strings.TrimPrefix(key, `\`)
		s.log.Log(logger.LogEntry{Level: "info", Message: "retrying resource lookup as " + alt})
		clips, err = s.sound.Lookup(ctx, alt, false)
		if err != nil {
			return nil, "", fmt.Errorf("resource lookup for %q: %w", alt, err)
		}
	}

	if len(clips) == 0 {
		s.log.Log(logger.LogEntry{Level: "info", Message: "no clip stored under " + key})
		return nil, "", ports.ErrNotFound
	}

	return clips[0].Data, ref.Ext, nil
}
