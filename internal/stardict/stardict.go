// Package stardict reads StarDict-format archives: a .ifo metadata file, a
// sorted .idx key table and a .dict payload file. The same wire format backs
// both the word dictionary and the binary resource storage, which keys its
// payloads by path-like strings instead of words.
package stardict

import (
	"context"
	"os"

	"github.com/ekazakov/dictvoice/internal/ports"
)

// Archive is one opened archive. The whole index is held in memory; the
// payload file is read on demand. An Archive is read-only after Open and safe
// for concurrent lookups.
type Archive struct {
	inf *info
	idx *index
	pf  *payloadFile
	f   *os.File
}

var _ ports.ArchiveEngine = (*Archive)(nil)

// Open opens the archive described by the given .ifo file. The companion .idx
// (optionally gzip compressed) and .dict files are located next to it.
func Open(ifoPath string) (*Archive, error) {
	inf, err := readInfo(ifoPath)
	if err != nil {
		return nil, err
	}

	idxPath, err := findIdxPath(ifoPath)
	if err != nil {
		return nil, err
	}
	entries, err := readIndex(idxPath, inf.idxOffsetBits)
	if err != nil {
		return nil, err
	}

	dictPath, err := findDictPath(ifoPath)
	if err != nil {
		return nil, err
	}
	pf, f, err := openPayloadFile(dictPath, inf.sameTypeSequence)
	if err != nil {
		return nil, err
	}

	return &Archive{
		inf: inf,
		idx: newIndex(entries),
		pf:  pf,
		f:   f,
	}, nil
}

// Lookup implements ports.ArchiveEngine.
func (a *Archive) Lookup(_ context.Context, key string, fold bool) ([]ports.Record, error) {
	var entries []entry
	if fold {
		entries = a.idx.lookupFolded(key)
	} else {
		entries = a.idx.lookupExact(key)
	}

	var records []ports.Record
	for _, e := range entries {
		data, err := a.pf.read(e)
		if err != nil {
			return nil, err
		}
		records = append(records, ports.Record{Key: e.key, Data: data})
	}
	return records, nil
}

// Name returns the archive's bookname.
func (a *Archive) Name() string {
	return a.inf.bookname
}

// Version returns the archive format version.
func (a *Archive) Version() string {
	return a.inf.version
}

// WordCount returns the declared number of keys.
func (a *Archive) WordCount() int64 {
	return a.inf.wordCount
}

// DataSize returns the size of the payload file in bytes.
func (a *Archive) DataSize() int64 {
	return a.pf.size
}

// Close closes the underlying payload file.
func (a *Archive) Close() error {
	return a.f.Close()
}
