package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"svmm/internal/domain"
	"svmm/internal/logging"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ModRegistry is the read-only view of the live profile's mods.
type ModRegistry struct {
	data    GameData
	scanner *Scanner
	log     *zap.SugaredLogger
}

// NewModRegistry creates a registry over data's layout.
func NewModRegistry(data GameData, scanner *Scanner, log *zap.SugaredLogger) *ModRegistry {
	if scanner == nil {
		scanner = NewScanner(log)
	}
	return &ModRegistry{data: data, scanner: scanner, log: logging.OrNop(log)}
}

// Load scans the mods root and the active profile's disabled folder.
func (r *ModRegistry) Load(ctx context.Context) (active, inactive []domain.InstalledMod, err error) {
	profile, err := activeProfile(r.data, r.log)
	if err != nil {
		return nil, nil, err
	}
	return r.LoadProfile(ctx, profile)
}

// LoadProfile scans the mods root and the named profile's disabled folder concurrently.
func (r *ModRegistry) LoadProfile(ctx context.Context, profile string) (active, inactive []domain.InstalledMod, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = r.scanner.Scan(gctx, r.data.ModsPath, true)
		return err
	})
	g.Go(func() error {
		var err error
		inactive, err = r.scanner.Scan(gctx, r.data.DisabledPath(profile), false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return active, inactive, nil
}

// Find returns the first mod with the given unique ID, active mods first.
func (r *ModRegistry) Find(ctx context.Context, id string) (*domain.InstalledMod, error) {
	active, inactive, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	if m := findByID(active, id); m != nil {
		return m, nil
	}
	if m := findByID(inactive, id); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, strings.TrimSpace(id))
}

// listProfiles returns profile directory names in lexical order.
func listProfiles(data GameData) ([]string, error) {
	entries, err := os.ReadDir(data.ProfilesPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// activeProfile reads the marker in the mods root. A missing, empty or stale
// marker falls back to the first listed profile.
func activeProfile(data GameData, log *zap.SugaredLogger) (string, error) {
	raw, err := os.ReadFile(data.MarkerPath())
	switch {
	case err == nil:
		name := strings.TrimSpace(string(raw))
		if name != "" && isDir(data.ProfilePath(name)) {
			return name, nil
		}
		log.Warnw("profile marker names no existing profile", "profile", name)
	case !errors.Is(err, fs.ErrNotExist):
		log.Warnw("reading profile marker", "error", err)
	}

	names, err := listProfiles(data)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no profiles under %s", domain.ErrProfileNotFound, data.ProfilesPath)
	}
	return names[0], nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
