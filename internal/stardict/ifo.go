package stardict

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-ini/ini"
)

const ifoMagic = "StarDict's dict ifo file"

// info is the metadata parsed from a .ifo file. The file is a magic line
// followed by an INI-shaped key=value body.
type info struct {
	bookname         string
	version          string
	wordCount        int64
	idxFileSize      int64
	idxOffsetBits    int
	sameTypeSequence string
}

func readInfo(path string) (*info, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	head, body, _ := strings.Cut(string(raw), "\n")
	if strings.TrimSpace(head) != ifoMagic {
		return nil, fmt.Errorf("%q: bad magic data", path)
	}

	f, err := ini.Load([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	sec := f.Section("")

	inf := &info{
		bookname:         sec.Key("bookname").String(),
		version:          sec.Key("version").String(),
		idxOffsetBits:    32,
		sameTypeSequence: sec.Key("sametypesequence").String(),
	}

	switch inf.version {
	case "2.4.2", "3.0.0":
	default:
		return nil, fmt.Errorf("%q: invalid version: %v", path, inf.version)
	}
	if inf.bookname == "" {
		return nil, fmt.Errorf("%q: missing bookname", path)
	}

	inf.wordCount, err = sec.Key("wordcount").Int64()
	if err != nil {
		return nil, fmt.Errorf("%q: bad wordcount: %w", path, err)
	}
	inf.idxFileSize, err = sec.Key("idxfilesize").Int64()
	if err != nil {
		return nil, fmt.Errorf("%q: bad idxfilesize: %w", path, err)
	}

	// idxoffsetbits only applies to version 3.0.0 files.
	if bits := sec.Key("idxoffsetbits").String(); bits != "" && inf.version == "3.0.0" {
		n, err := sec.Key("idxoffsetbits").Int()
		if err != nil || (n != 32 && n != 64) {
			return nil, fmt.Errorf("%q: invalid idxoffsetbits: %v", path, bits)
		}
		inf.idxOffsetBits = n
	}

	return inf, nil
}
