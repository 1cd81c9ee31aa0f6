package archive

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestWriteRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "podcast_segment_01_Host_Alpha.mp3", Data: []byte("first segment")},
		{Name: "podcast_segment_02_來賓Beta.mp3", Data: []byte("second segment")},
	}

	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading archive back: %v", err)
	}
	if len(zr.File) != len(entries) {
		t.Fatalf("archive holds %d files, want %d", len(zr.File), len(entries))
	}
	for i, f := range zr.File {
		if f.Name != entries[i].Name {
			t.Errorf("entry %d name = %q, want %q", i, f.Name, entries[i].Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening entry %q: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close() //nolint:errcheck
		if err != nil {
			t.Fatalf("reading entry %q: %v", f.Name, err)
		}
		if !bytes.Equal(data, entries[i].Data) {
			t.Errorf("entry %q content mismatch", f.Name)
		}
	}
}

func TestWriteEmptyArchive(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write() with no entries error = %v", err)
	}
	if _, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		t.Errorf("empty archive is not readable: %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segments.zip")
	if err := WriteFile(path, []Entry{{Name: "a.mp3", Data: []byte("audio")}}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Errorf("archive file missing or empty: %v", err)
	}
}
