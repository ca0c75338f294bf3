package stardict

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// TestEntry is one key/payload pair for a generated test archive.
type TestEntry struct {
	Key  string
	Data []byte
}

// TestArchiveOptions controls the shape of a generated test archive.
type TestArchiveOptions struct {
	// SameTypeSequence is written to the .ifo. Payloads are stored bare when
	// it names a single type.
	SameTypeSequence string

	// OffsetBits selects 32 or 64 bit offsets. Zero means 32.
	OffsetBits int

	// GzipIdx compresses the index into a .idx.gz file.
	GzipIdx bool
}

// WriteTestArchive writes a .ifo/.idx/.dict triple under dir and returns the
// .ifo path. Entries are stored in the order given.
func WriteTestArchive(t *testing.T, dir, name string, entries []TestEntry, opts TestArchiveOptions) string {
	t.Helper()

	if opts.OffsetBits == 0 {
		opts.OffsetBits = 32
	}

	var dictBuf, idxBuf bytes.Buffer
	for _, e := range entries {
		offset := dictBuf.Len()
		dictBuf.Write(e.Data)

		idxBuf.WriteString(e.Key)
		idxBuf.WriteByte(0)
		if opts.OffsetBits == 64 {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(offset))
			idxBuf.Write(b[:])
		} else {
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(offset))
			idxBuf.Write(b[:])
		}
		var sz [4]byte
		binary.BigEndian.PutUint32(sz[:], uint32(len(e.Data)))
		idxBuf.Write(sz[:])
	}

	version := "2.4.2"
	ifo := fmt.Sprintf("%s\nversion=%s\nbookname=%s\nwordcount=%d\nidxfilesize=%d\n",
		ifoMagic, version, name, len(entries), idxBuf.Len())
	if opts.OffsetBits == 64 {
		ifo = fmt.Sprintf("%s\nversion=3.0.0\nbookname=%s\nwordcount=%d\nidxfilesize=%d\nidxoffsetbits=64\n",
			ifoMagic, name, len(entries), idxBuf.Len())
	}
	if opts.SameTypeSequence != "" {
		ifo += "sametypesequence=" + opts.SameTypeSequence + "\n"
	}

	ifoPath := filepath.Join(dir, name+".ifo")
	if err := os.WriteFile(ifoPath, []byte(ifo), 0o600); err != nil {
		t.Fatal(err)
	}

	idxPath := filepath.Join(dir, name+".idx")
	if opts.GzipIdx {
		var gz bytes.Buffer
		zw := gzip.NewWriter(&gz)
		if _, err := zw.Write(idxBuf.Bytes()); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(idxPath+".gz", gz.Bytes(), 0o600); err != nil {
			t.Fatal(err)
		}
	} else {
		if err := os.WriteFile(idxPath, idxBuf.Bytes(), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	dictPath := filepath.Join(dir, name+".dict")
	if err := os.WriteFile(dictPath, dictBuf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	return ifoPath
}
