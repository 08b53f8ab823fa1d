package core

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"svmm/internal/domain"
	"svmm/internal/logging"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// maxArchiveDepth is how far below the downloads folder archives are found.
	maxArchiveDepth = 2
	// maxManifestSize caps how much of an archived manifest is read.
	maxManifestSize = 1 << 20
)

// ArchiveInstaller inspects mod archives and unpacks them into the mods root.
type ArchiveInstaller struct {
	modsPath  string
	extractor *Extractor
	log       *zap.SugaredLogger
}

// NewArchiveInstaller creates an installer that extracts into modsPath.
func NewArchiveInstaller(modsPath string, log *zap.SugaredLogger) *ArchiveInstaller {
	return &ArchiveInstaller{
		modsPath:  modsPath,
		extractor: NewExtractor(),
		log:       logging.OrNop(log),
	}
}

// Inspect lists the manifests inside a zip. Any entry whose name ends in
// manifest.json counts. Returns ErrNoManifest when there are none.
func (i *ArchiveInstaller) Inspect(archivePath string) (*domain.ZipArchiveCandidate, error) {
	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractFailed, err)
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrExtractFailed, archivePath, err)
	}
	defer r.Close()

	candidate := &domain.ZipArchiveCandidate{Path: archivePath, ModTime: info.ModTime()}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, domain.ManifestName) {
			continue
		}
		m, err := readArchivedManifest(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", archivePath, f.Name, err)
		}
		candidate.Manifests = append(candidate.Manifests, domain.ArchivedManifest{Entry: f.Name, Manifest: *m})
	}

	if len(candidate.Manifests) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoManifest, archivePath)
	}
	return candidate, nil
}

func readArchivedManifest(f *zip.File) (*domain.ModManifest, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractFailed, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxManifestSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractFailed, err)
	}
	return domain.ParseManifest(data)
}

// Install extracts a zip into the mods root and returns the directory it
// extracted into. An archive with manifest.json at its top level is unpacked
// into a folder named after the archive; anything else is unpacked into the
// mods root as-is.
func (i *ArchiveInstaller) Install(ctx context.Context, archivePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rootManifest, err := hasRootManifest(archivePath)
	if err != nil {
		return "", err
	}

	target := i.modsPath
	if rootManifest {
		name := archiveStem(archivePath)
		if name == "" {
			return "", fmt.Errorf("%w: cannot derive a folder name from %s", domain.ErrExtractFailed, archivePath)
		}
		target = filepath.Join(i.modsPath, name)
	}

	if err := i.extractor.Extract(ctx, archivePath, target); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractFailed, archivePath, err)
	}
	i.log.Infow("installed archive", "archive", archivePath, "target", target)
	return target, nil
}

func hasRootManifest(archivePath string) (bool, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return false, fmt.Errorf("%w: opening %s: %w", domain.ErrExtractFailed, archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if path.Clean(f.Name) == domain.ManifestName {
			return true, nil
		}
	}
	return false, nil
}

// archiveStem is the archive's file name without its extension.
func archiveStem(archivePath string) string {
	base := filepath.Base(archivePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "." || stem == ".." {
		return ""
	}
	return stem
}

// FindArchives looks up to two levels below dir for zip archives that hold
// at least one readable manifest, newest first. Archives that fail to open
// or parse are skipped. A missing dir yields no archives.
func (i *ArchiveInstaller) FindArchives(ctx context.Context, dir string) ([]domain.ZipArchiveCandidate, error) {
	var paths []string
	err := fs.WalkDir(os.DirFS(dir), ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			if rel == "." && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		depth := pathDepth(rel)
		if d.IsDir() {
			if depth >= maxArchiveDepth {
				return fs.SkipDir
			}
			return nil
		}
		if i.extractor.CanExtract(d.Name()) {
			paths = append(paths, filepath.Join(dir, filepath.FromSlash(rel)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", dir, err)
	}

	found := make([]*domain.ZipArchiveCandidate, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for idx, p := range paths {
		idx, p := idx, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := i.Inspect(p)
			if err != nil {
				i.log.Debugw("skipping archive", "path", p, "error", err)
				return nil
			}
			found[idx] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var archives []domain.ZipArchiveCandidate
	for _, c := range found {
		if c != nil {
			archives = append(archives, *c)
		}
	}
	slices.SortStableFunc(archives, func(a, b domain.ZipArchiveCandidate) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
	return archives, nil
}
