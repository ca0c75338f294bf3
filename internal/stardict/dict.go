package stardict

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// payloadFile reads stored payload blocks out of a .dict file.
type payloadFile struct {
	r    io.ReaderAt
	sts  string // sametypesequence from the .ifo, may be empty
	size int64
}

func findDictPath(ifoPath string) (string, error) {
	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	for _, ext := range []string{".dict", ".DICT"} {
		p := base + ext
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	for _, ext := range []string{".dict.dz", ".DICT.dz", ".DICT.DZ"} {
		if _, err := os.Stat(base + ext); err == nil {
			return "", fmt.Errorf("%q: dictzip data is not supported, gunzip it to a plain .dict file", base+ext)
		}
	}
	return "", fmt.Errorf("no dict found for %q", ifoPath)
}

func openPayloadFile(path, sts string) (*payloadFile, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %q: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat %q: %w", path, err)
	}
	return &payloadFile{r: f, sts: sts, size: st.Size()}, f, nil
}

// read returns the payload bytes for one index entry.
func (d *payloadFile) read(e entry) ([]byte, error) {
	b := make([]byte, e.size)
	if _, err := d.r.ReadAt(b, int64(e.offset)); err != nil {
		return nil, fmt.Errorf("reading dict block at %d: %w", e.offset, err)
	}
	return firstPayload(b, d.sts), nil
}

// firstPayload extracts the first datum from a raw dict block. A block with a
// single sametypesequence type is the bare payload. Otherwise each datum is
// typed: lower case types are NUL-terminated strings, upper case types carry a
// 32-bit size prefix. The type byte itself is present in the block only when
// no sametypesequence was declared.
func firstPayload(block []byte, sts string) []byte {
	var typ byte
	rest := block
	switch {
	case len(sts) == 1:
		return block
	case sts != "":
		typ = sts[0]
	default:
		if len(block) == 0 {
			return nil
		}
		typ = block[0]
		rest = block[1:]
	}

	if 'a' <= typ && typ <= 'z' {
		if i := bytes.IndexByte(rest, 0); i >= 0 {
			return rest[:i]
		}
		return rest
	}

	if len(rest) < 4 {
		return nil
	}
	n := int(binary.BigEndian.Uint32(rest))
	rest = rest[4:]
	if n > len(rest) {
		n = len(rest)
	}
	return rest[:n]
}
