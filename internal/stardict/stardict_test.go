package stardict

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ekazakov/dictvoice/internal/ports"
)

func TestOpen_Lookup(t *testing.T) {
	t.Parallel()

	entries := []TestEntry{
		{Key: "Apple", Data: []byte(`<b>apple</b> <a href="sound://voc/D/apple.mp3">play</a>`)},
		{Key: "banana", Data: []byte("<b>banana</b>")},
		{Key: "banana", Data: []byte("<b>banana (bis)</b>")},
		{Key: "cherry", Data: []byte("<b>cherry</b>")},
	}

	tests := []struct {
		name     string
		opts     TestArchiveOptions
		query    string
		fold     bool
		expected []ports.Record
	}{
		{
			name:  "exact hit",
			opts:  TestArchiveOptions{SameTypeSequence: "h"},
			query: "cherry",
			expected: []ports.Record{
				{Key: "cherry", Data: []byte("<b>cherry</b>")},
			},
		},
		{
			name:  "exact is case sensitive",
			opts:  TestArchiveOptions{SameTypeSequence: "h"},
			query: "apple",
		},
		{
			name:  "folded hit",
			opts:  TestArchiveOptions{SameTypeSequence: "h"},
			query: "APPLE",
			fold:  true,
			expected: []ports.Record{
				{Key: "Apple", Data: []byte(`<b>apple</b> <a href="sound://voc/D/apple.mp3">play</a>`)},
			},
		},
		{
			name:  "duplicate keys keep file order",
			opts:  TestArchiveOptions{SameTypeSequence: "h"},
			query: "banana",
			expected: []ports.Record{
				{Key: "banana", Data: []byte("<b>banana</b>")},
				{Key: "banana", Data: []byte("<b>banana (bis)</b>")},
			},
		},
		{
			name:  "miss",
			opts:  TestArchiveOptions{SameTypeSequence: "h"},
			query: "durian",
			fold:  true,
		},
		{
			name:  "gzip index",
			opts:  TestArchiveOptions{SameTypeSequence: "h", GzipIdx: true},
			query: "cherry",
			expected: []ports.Record{
				{Key: "cherry", Data: []byte("<b>cherry</b>")},
			},
		},
		{
			name:  "64 bit offsets",
			opts:  TestArchiveOptions{SameTypeSequence: "h", OffsetBits: 64},
			query: "cherry",
			expected: []ports.Record{
				{Key: "cherry", Data: []byte("<b>cherry</b>")},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			ifoPath := WriteTestArchive(t, t.TempDir(), "test", entries, test.opts)
			a, err := Open(ifoPath)
			if err != nil {
				t.Fatal(err)
			}
			defer a.Close()

			got, err := a.Lookup(context.Background(), test.query, test.fold)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Lookup (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestOpen_binaryPayloads(t *testing.T) {
	t.Parallel()

	audio := []byte{0xff, 0xfb, 0x90, 0x00, 0x00, 0x01, 0x02}
	ifoPath := WriteTestArchive(t, t.TempDir(), "sound", []TestEntry{
		{Key: `\voc\D\apple.mp3`, Data: audio},
	}, TestArchiveOptions{SameTypeSequence: "W"})

	a, err := Open(ifoPath)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	got, err := a.Lookup(context.Background(), `\voc\D\apple.mp3`, false)
	if err != nil {
		t.Fatal(err)
	}
	expected := []ports.Record{{Key: `\voc\D\apple.mp3`, Data: audio}}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Lookup (-want, +got):\n%s", diff)
	}
}

func TestOpen_metadata(t *testing.T) {
	t.Parallel()

	ifoPath := WriteTestArchive(t, t.TempDir(), "meta", []TestEntry{
		{Key: "a", Data: []byte("x")},
		{Key: "b", Data: []byte("y")},
	}, TestArchiveOptions{SameTypeSequence: "h"})

	a, err := Open(ifoPath)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if got := a.Name(); got != "meta" {
		t.Errorf("Name: expected %q, got %q", "meta", got)
	}
	if got := a.WordCount(); got != 2 {
		t.Errorf("WordCount: expected 2, got %d", got)
	}
	if got := a.DataSize(); got != 2 {
		t.Errorf("DataSize: expected 2, got %d", got)
	}
	if got := a.Version(); got != "2.4.2" {
		t.Errorf("Version: expected 2.4.2, got %q", got)
	}
}

func TestOpen_errors(t *testing.T) {
	t.Parallel()

	t.Run("missing ifo", func(t *testing.T) {
		t.Parallel()
		if _, err := Open(t.TempDir() + "/nope.ifo"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing idx", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		ifoPath := WriteTestArchive(t, dir, "x", nil, TestArchiveOptions{SameTypeSequence: "h"})
		// Remove the index out from under the .ifo.
		if err := os.Remove(filepath.Join(dir, "x.idx")); err != nil {
			t.Fatal(err)
		}
		if _, err := Open(ifoPath); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestReadIndex_truncatedRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trunc.idx")
	// A key followed by only two of the eight offset/size bytes.
	if err := os.WriteFile(path, []byte("apple\x00\x01\x02"), 0o600); err != nil {
		t.Fatal(err)
	}

	entries, err := readIndex(path, 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries from a truncated record, got %d", len(entries))
	}
}

func TestOpen_truncatedIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ifoPath := WriteTestArchive(t, dir, "trunc", []TestEntry{
		{Key: "apple", Data: []byte("<b>apple</b>")},
		{Key: "banana", Data: []byte("<b>banana</b>")},
	}, TestArchiveOptions{SameTypeSequence: "h"})

	// Cut the last record off mid-field.
	idxPath := filepath.Join(dir, "trunc.idx")
	raw, err := os.ReadFile(idxPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(idxPath, raw[:len(raw)-3], 0o600); err != nil {
		t.Fatal(err)
	}

	a, err := Open(ifoPath)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	got, err := a.Lookup(context.Background(), "apple", false)
	if err != nil {
		t.Fatal(err)
	}
	expected := []ports.Record{{Key: "apple", Data: []byte("<b>apple</b>")}}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Lookup (-want, +got):\n%s", diff)
	}

	// The damaged record is dropped, not served.
	got, err = a.Lookup(context.Background(), "banana", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records for the truncated key, got %d", len(got))
	}
}

func TestFirstPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		block    []byte
		sts      string
		expected []byte
	}{
		{
			name:     "single type sequence is bare",
			block:    []byte{0x01, 0x02, 0x00, 0x03},
			sts:      "W",
			expected: []byte{0x01, 0x02, 0x00, 0x03},
		},
		{
			name:     "typed string datum",
			block:    append([]byte("h<b>hi</b>"), 0),
			expected: []byte("<b>hi</b>"),
		},
		{
			name:     "typed file datum",
			block:    []byte{'W', 0, 0, 0, 2, 0xca, 0xfe, 0xff},
			expected: []byte{0xca, 0xfe},
		},
		{
			name:     "multi type sequence takes first",
			block:    append([]byte("[th]"), append([]byte{0}, []byte("<b>hi</b>")...)...),
			sts:      "th",
			expected: []byte("[th]"),
		},
		{
			name:  "empty block",
			block: nil,
		},
		{
			name:  "truncated file datum",
			block: []byte{'W', 0, 0},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := firstPayload(test.block, test.sts)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("firstPayload (-want, +got):\n%s", diff)
			}
		})
	}
}
