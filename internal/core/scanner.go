package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"svmm/internal/domain"
	"svmm/internal/logging"

	"go.uber.org/zap"
)

// maxScanDepth is how many levels below the root a manifest may sit.
const maxScanDepth = 3

// Scanner discovers mod manifests below a directory.
type Scanner struct {
	log *zap.SugaredLogger
}

// NewScanner creates a Scanner. A nil logger discards output.
func NewScanner(log *zap.SugaredLogger) *Scanner {
	return &Scanner{log: logging.OrNop(log)}
}

// Scan walks root up to three levels deep and parses every manifest.json,
// tagging each result with active. A missing root yields no mods. Results
// are ordered by manifest modification time, oldest first.
func (s *Scanner) Scan(ctx context.Context, root string, active bool) ([]domain.InstalledMod, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	var mods []domain.InstalledMod
	err = fs.WalkDir(os.DirFS(root), ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		depth := pathDepth(rel)
		if d.IsDir() {
			if depth >= maxScanDepth {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() != domain.ManifestName {
			return nil
		}
		path := filepath.Join(root, filepath.FromSlash(rel))
		if depth == 1 {
			s.log.Warnw("ignoring manifest at scan root", "path", path)
			return nil
		}

		mod, err := readInstalledMod(path, d)
		if err != nil {
			return err
		}
		mod.Active = active
		mods = append(mods, *mod)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	slices.SortStableFunc(mods, func(a, b domain.InstalledMod) int {
		if c := a.Modified.Compare(b.Modified); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
	s.log.Debugw("scanned mods", "root", root, "count", len(mods), "active", active)
	return mods, nil
}

func readInstalledMod(path string, d fs.DirEntry) (*domain.InstalledMod, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := domain.ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	info, err := d.Info()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &domain.InstalledMod{
		ModManifest: *m,
		Path:        filepath.Dir(path),
		Modified:    info.ModTime(),
	}, nil
}

// pathDepth counts the elements of a slash-separated path relative to the
// scan root; the root itself is 0.
func pathDepth(rel string) int {
	if rel == "." {
		return 0
	}
	return strings.Count(rel, "/") + 1
}

// findByID returns the first mod whose trimmed unique ID equals id.
func findByID(mods []domain.InstalledMod, id string) *domain.InstalledMod {
	id = strings.TrimSpace(id)
	for i := range mods {
		if mods[i].ID() == id {
			return &mods[i]
		}
	}
	return nil
}
