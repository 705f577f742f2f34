// Package fs provides filesystem adapters that implement chapter service interfaces.
package fs

import (
	"context"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// OSReader implements chapter.FileSystem using the os package.
type OSReader struct{}

// Stat returns file info for path.
func (OSReader) Stat(_ context.Context, path string) (iofs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the full content of path.
func (OSReader) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadDir returns the entry names of a directory in lexical order.
func (OSReader) ReadDir(_ context.Context, path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", path, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// OSWriter implements chapter.FileWriter using the os package.
type OSWriter struct{}

// MkdirAll creates path and any missing parents.
func (OSWriter) MkdirAll(_ context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// CreateFile writes content to a new file, creating parent directories as
// needed. It fails with an error wrapping fs.ErrExist if the file exists,
// and does nothing once ctx is done.
func (w OSWriter) CreateFile(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.MkdirAll(ctx, filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return f.Close()
}
