package core

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extractor unpacks zip archives.
type Extractor struct{}

// NewExtractor creates a new Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// CanExtract reports whether filename has an archive extension the extractor handles.
func (e *Extractor) CanExtract(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".zip")
}

// Extract unpacks every entry of the zip at archivePath below destDir,
// creating destDir if needed. Existing files are overwritten.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) (err error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing zip: %w", cerr)
		}
	}()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.extractEntry(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) extractEntry(f *zip.File, destDir string) (err error) {
	destPath, err := entryPath(destDir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s in archive: %w", f.Name, err)
	}
	defer rc.Close()

	// Owner always gets read/write so a later reinstall can overwrite the file.
	mode := f.Mode().Perm() | 0600
	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing file %s: %w", destPath, cerr)
		}
	}()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("writing file %s: %w", destPath, err)
	}
	return nil
}

// entryPath joins an archive entry name onto destDir and rejects names that
// would land outside it.
func entryPath(destDir, name string) (string, error) {
	base := filepath.Clean(destDir)
	dest := filepath.Join(base, filepath.FromSlash(name))
	if dest != base && !strings.HasPrefix(dest, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("path traversal detected: %s", name)
	}
	return dest, nil
}
