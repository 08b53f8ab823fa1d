// Package mover relocates mod and profile folders on disk.
package mover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"svmm/internal/logging"

	"go.uber.org/zap"
)

// ErrDestinationExists is returned when dst is already present. Movers never
// merge two trees.
var ErrDestinationExists = errors.New("destination exists")

// Mover relocates a directory tree from src to dst
type Mover interface {
	Move(src, dst string) error
}

// RenameMover moves trees with a rename and hands the move to its fallback
// when src and dst are on different filesystems.
type RenameMover struct {
	fallback Mover
	log      *zap.SugaredLogger
}

// New creates the default mover: rename, copying across filesystems.
func New(log *zap.SugaredLogger) *RenameMover {
	return &RenameMover{fallback: NewCopy(), log: logging.OrNop(log)}
}

// Move renames src to dst, creating dst's parent first.
func (m *RenameMover) Move(src, dst string) error {
	if err := prepare(dst); err != nil {
		return err
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EXDEV) && m.fallback != nil {
		m.log.Debugw("rename crosses filesystems, copying instead", "src", src, "dst", dst)
		return m.fallback.Move(src, dst)
	}
	return fmt.Errorf("renaming: %w", err)
}

// prepare creates dst's parent and refuses an existing dst.
func prepare(dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat destination: %w", err)
	}
	return nil
}
