// Package archive bundles rendered audio artifacts into a single
// downloadable zip file.
package archive

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
)

// Entry is one named artifact to include in the archive.
type Entry struct {
	Name string
	Data []byte
}

// Write streams a zip archive holding every entry to w. Filenames are used
// as-is; callers sanitize them first. Any encoder failure is surfaced as a
// packaging error, distinct from upstream synthesis failures.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		f, err := zw.Create(e.Name)
		if err != nil {
			return fmt.Errorf("packaging %s: %w", e.Name, err)
		}
		if _, err := f.Write(e.Data); err != nil {
			return fmt.Errorf("packaging %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// WriteFile writes the archive to path, replacing any existing file.
func WriteFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	if err := Write(f, entries); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}
