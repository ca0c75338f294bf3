package stardict

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/cases"
)

// entry is one .idx record: a key and the offset/size of its payload in the
// .dict file.
type entry struct {
	key    string
	offset uint64
	size   uint32
}

// index holds all entries twice: sorted by raw key for exact lookup and by
// case-folded key for folded lookup. Both views are immutable after build.
type index struct {
	exact  []entry
	folded []foldedEntry
}

type foldedEntry struct {
	key string // case-folded form of e.key
	e   entry
}

func findIdxPath(ifoPath string) (string, error) {
	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	for _, ext := range []string{".idx", ".idx.gz", ".IDX", ".IDX.gz"} {
		p := base + ext
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no index found for %q", ifoPath)
}

func readIndex(path string, offsetBits int) ([]entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	s.Split(splitIndex(offsetBits))

	var entries []entry
	for s.Scan() {
		b := s.Bytes()
		i := bytes.IndexByte(b, 0)
		if i < 0 || len(b) < i+1+offsetBits/8+4 {
			// Trailing garbage or a final record cut off mid-field.
			continue
		}
		e := entry{key: string(b[:i])}
		if offsetBits == 64 {
			e.offset = binary.BigEndian.Uint64(b[i+1:])
		} else {
			e.offset = uint64(binary.BigEndian.Uint32(b[i+1:]))
		}
		e.size = binary.BigEndian.Uint32(b[i+1+offsetBits/8:])
		entries = append(entries, e)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return entries, nil
}

// splitIndex returns a bufio split function for .idx records: a NUL-terminated
// key followed by an offset (32 or 64 bits) and a 32-bit size.
func splitIndex(offsetBits int) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, 0); i >= 0 {
			tokenSize := i + 1 + offsetBits/8 + 4
			if len(data) >= tokenSize {
				return tokenSize, data[:tokenSize], nil
			}
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

func newIndex(entries []entry) *index {
	idx := &index{
		exact:  make([]entry, len(entries)),
		folded: make([]foldedEntry, 0, len(entries)),
	}
	copy(idx.exact, entries)
	sort.SliceStable(idx.exact, func(i, j int) bool {
		return idx.exact[i].key < idx.exact[j].key
	})

	caser := cases.Fold()
	for _, e := range entries {
		idx.folded = append(idx.folded, foldedEntry{key: caser.String(e.key), e: e})
	}
	sort.SliceStable(idx.folded, func(i, j int) bool {
		return idx.folded[i].key < idx.folded[j].key
	})

	return idx
}

// lookupExact returns all entries whose key equals the query byte for byte.
func (idx *index) lookupExact(query string) []entry {
	i := sort.Search(len(idx.exact), func(i int) bool {
		return idx.exact[i].key >= query
	})
	var out []entry
	for ; i < len(idx.exact) && idx.exact[i].key == query; i++ {
		out = append(out, idx.exact[i])
	}
	return out
}

// lookupFolded returns all entries matching the query under Unicode case
// folding.
func (idx *index) lookupFolded(query string) []entry {
	// cases.Caser carries state and is not safe for concurrent use, so each
	// lookup gets its own.
	q := cases.Fold().String(query)
	i := sort.Search(len(idx.folded), func(i int) bool {
		return idx.folded[i].key >= q
	})
	var out []entry
	for ; i < len(idx.folded) && idx.folded[i].key == q; i++ {
		out = append(out, idx.folded[i].e)
	}
	return out
}
