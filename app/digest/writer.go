package digest

import (
	"fmt"
	"os"
	"path/filepath"
)

type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Path() string {
	return w.path
}

// Run replaces the snapshot at the writer's path with data. The new content is
// written to a temporary file in the same directory and renamed into place, so
// a failed run leaves the previous snapshot untouched.
func (w *Writer) Run(data []byte) (err error) {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set snapshot permissions: %w", err)
	}
	if err = os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
