package domain

import (
	"regexp"
	"strings"
)

var (
	soundRefRe = regexp.MustCompile(`(?i)href="(sound://[^"]+?\.(mp3|spx|wav|ogg))"`)
	schemeRe   = regexp.MustCompile(`(?i)^sound:(//)?`)
)

// SoundRef is an audio reference embedded in a dictionary article.
type SoundRef struct {
	Path string // relative path inside the resource archive
	Ext  string // lowercased clip extension
}

// ExtractSoundRef finds the first sound:// reference in article markup. The
// extension is lowercased both standalone and within the path.
func ExtractSoundRef(markup string) (SoundRef, bool) {
	m := soundRefRe.FindStringSubmatch(markup)
	if m == nil {
		return SoundRef{}, false
	}

	path := schemeRe.ReplaceAllString(m[1], "")
	ext := strings.ToLower(m[2])
	path = path[:len(path)-len(ext)] + ext

	return SoundRef{Path: path, Ext: ext}, true
}

// ResourceKey converts a reference path to the key format the resource
// archive is indexed by: backslash separated, exactly one leading backslash,
// no doubled separators.
func ResourceKey(path string) string {
	key := `\` + strings.ReplaceAll(path, "/", `\`)
	for strings.Contains(key, `\\`) {
		key = strings.ReplaceAll(key, `\\`, `\`)
	}
	return key
}
