package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"svmm/internal/domain"
	"svmm/internal/logging"
	"svmm/internal/mover"

	"go.uber.org/zap"
)

// SwitchJournal records profile switches so an interrupted one can be resumed.
type SwitchJournal interface {
	BeginSwitch(from, to string) (string, error)
	SetSwitchPhase(id string, phase domain.SwitchPhase) error
	PendingSwitch() (*domain.SwitchRecord, error)
}

// ProfileManager handles profile creation and switching, and moves mods
// between the live mods root and profile folders.
type ProfileManager struct {
	data     GameData
	registry *ModRegistry
	journal  SwitchJournal
	mover    mover.Mover
	log      *zap.SugaredLogger
	now      func() time.Time

	// mu serializes every operation that moves directories.
	mu sync.Mutex
}

// NewProfileManager creates a new profile manager. journal may be nil, in
// which case switches are not recorded and Repair has nothing to resume.
func NewProfileManager(data GameData, registry *ModRegistry, journal SwitchJournal, log *zap.SugaredLogger) *ProfileManager {
	log = logging.OrNop(log)
	if registry == nil {
		registry = NewModRegistry(data, nil, log)
	}
	return &ProfileManager{
		data:     data,
		registry: registry,
		journal:  journal,
		mover:    mover.New(log),
		log:      log,
		now:      time.Now,
	}
}

// SetClock replaces the time source used to stamp deleted folders.
func (pm *ProfileManager) SetClock(now func() time.Time) {
	pm.now = now
}

// Bootstrap creates the manager layout and the default profiles when none exist.
func (pm *ProfileManager) Bootstrap() error {
	for _, dir := range []string{pm.data.ProfilesPath, pm.data.DeletedPath, pm.data.ModsPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	names, err := listProfiles(pm.data)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		for _, name := range DefaultProfiles {
			if err := pm.createDirs(name); err != nil {
				return err
			}
		}
		pm.log.Infow("created default profiles", "path", pm.data.ProfilesPath)
	}
	return pm.pinActive()
}

// List returns all profiles, marking the active one.
func (pm *ProfileManager) List() ([]domain.Profile, error) {
	names, err := listProfiles(pm.data)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	active, err := activeProfile(pm.data, pm.log)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, len(names))
	for i, name := range names {
		profiles[i] = domain.Profile{
			Name:   name,
			Path:   pm.data.ProfilePath(name),
			Active: name == active,
		}
	}
	return profiles, nil
}

// Active returns the name of the live profile.
func (pm *ProfileManager) Active() (string, error) {
	return activeProfile(pm.data, pm.log)
}

// Create adds an empty profile.
func (pm *ProfileManager) Create(name string) (*domain.Profile, error) {
	if err := validateProfileName(name); err != nil {
		return nil, err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	if _, err := os.Stat(pm.data.ProfilePath(name)); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileExists, name)
	}
	// A new name may sort first, so the fallback must not pick it up.
	if err := pm.pinActive(); err != nil {
		return nil, err
	}
	if err := pm.createDirs(name); err != nil {
		return nil, err
	}
	return &domain.Profile{Name: name, Path: pm.data.ProfilePath(name)}, nil
}

// Delete soft-deletes a profile that is not live into the deleted folder.
func (pm *ProfileManager) Delete(name string) (string, error) {
	if err := validateProfileName(name); err != nil {
		return "", err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	if !isDir(pm.data.ProfilePath(name)) {
		return "", fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}
	active, err := activeProfile(pm.data, pm.log)
	if err != nil {
		return "", err
	}
	if active == name {
		return "", fmt.Errorf("cannot delete active profile %s", name)
	}

	target := pm.deletedTarget("profile-" + name)
	if err := pm.moveDir(pm.data.ProfilePath(name), target); err != nil {
		return "", err
	}
	return target, nil
}

// Toggle moves a mod between the mods root and the active profile's disabled
// folder, keeping its path relative to the folder it leaves. It returns the
// mod at its new location.
func (pm *ProfileManager) Toggle(ctx context.Context, id string) (*domain.InstalledMod, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	profile, err := activeProfile(pm.data, pm.log)
	if err != nil {
		return nil, err
	}
	active, inactive, err := pm.registry.LoadProfile(ctx, profile)
	if err != nil {
		return nil, err
	}

	on := findByID(active, id)
	off := findByID(inactive, id)
	disabled := pm.data.DisabledPath(profile)

	var mod *domain.InstalledMod
	var from, to string
	switch {
	case on != nil && off != nil:
		return nil, fmt.Errorf("%w: %s found in %s and %s", domain.ErrAmbiguousState, strings.TrimSpace(id), on.Path, off.Path)
	case on != nil:
		mod, from, to = on, pm.data.ModsPath, disabled
	case off != nil:
		mod, from, to = off, disabled, pm.data.ModsPath
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, strings.TrimSpace(id))
	}

	rel, err := filepath.Rel(from, mod.Path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("%w: %s is not below %s", domain.ErrMoveFailed, mod.Path, from)
	}
	target := filepath.Join(to, rel)
	if err := pm.moveDir(mod.Path, target); err != nil {
		return nil, err
	}

	moved := *mod
	moved.Path = target
	moved.Active = !mod.Active
	pm.log.Infow("toggled mod", "id", moved.ID(), "active", moved.Active, "path", target)
	return &moved, nil
}

// Select makes name the live profile: the mods root is stashed into the
// current profile's enabled folder and the target's enabled folder takes
// its place. Selecting the live profile only rewrites the marker.
func (pm *ProfileManager) Select(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	if validateProfileName(name) != nil || !isDir(pm.data.ProfilePath(name)) {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}
	if pm.journal != nil {
		pending, err := pm.journal.PendingSwitch()
		if err != nil {
			return fmt.Errorf("checking switch journal: %w", err)
		}
		if pending != nil {
			return fmt.Errorf("%w: %s -> %s stopped at %s, run repair first",
				domain.ErrSwitchInterrupted, pending.From, pending.To, pending.Phase)
		}
	}

	current, err := activeProfile(pm.data, pm.log)
	if err != nil {
		return err
	}
	if current == name {
		return pm.writeMarker(name)
	}

	var id string
	if pm.journal != nil {
		if id, err = pm.journal.BeginSwitch(current, name); err != nil {
			return fmt.Errorf("journaling switch: %w", err)
		}
	}
	if err := pm.runSwitch(ctx, id, current, name, domain.SwitchStash); err != nil {
		return err
	}
	pm.log.Infow("switched profile", "from", current, "to", name)
	return nil
}

// Repair resumes a switch the journal shows as unfinished and returns it,
// or nil when there was nothing to resume.
func (pm *ProfileManager) Repair(ctx context.Context) (*domain.SwitchRecord, error) {
	if pm.journal == nil {
		return nil, nil
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	pending, err := pm.journal.PendingSwitch()
	if err != nil {
		return nil, fmt.Errorf("checking switch journal: %w", err)
	}
	if pending == nil {
		return nil, nil
	}

	pm.log.Warnw("resuming interrupted profile switch", "from", pending.From, "to", pending.To, "phase", pending.Phase)
	if err := pm.runSwitch(ctx, pending.ID, pending.From, pending.To, pending.Phase); err != nil {
		return nil, err
	}
	pending.Phase = domain.SwitchDone
	return pending, nil
}

// runSwitch performs the switch from phase onward. Each phase moves whatever
// is still left to move, so rerunning a phase is safe.
func (pm *ProfileManager) runSwitch(ctx context.Context, id, from, to string, phase domain.SwitchPhase) error {
	if phase == domain.SwitchStash {
		if err := pm.moveChildren(ctx, pm.data.ModsPath, pm.data.EnabledPath(from)); err != nil {
			return fmt.Errorf("stashing profile %s: %w", from, err)
		}
		if err := pm.setPhase(id, domain.SwitchRestore); err != nil {
			return err
		}
		phase = domain.SwitchRestore
	}

	if phase == domain.SwitchRestore {
		if err := pm.moveChildren(ctx, pm.data.EnabledPath(to), pm.data.ModsPath); err != nil {
			return fmt.Errorf("restoring profile %s: %w", to, err)
		}
		if err := pm.writeMarker(to); err != nil {
			return err
		}
		return pm.setPhase(id, domain.SwitchDone)
	}
	return nil
}

func (pm *ProfileManager) setPhase(id string, phase domain.SwitchPhase) error {
	if pm.journal == nil || id == "" {
		return nil
	}
	if err := pm.journal.SetSwitchPhase(id, phase); err != nil {
		return fmt.Errorf("journaling switch phase %s: %w", phase, err)
	}
	return nil
}

// moveChildren moves every directory directly inside src into dst. Files
// such as the profile marker stay put.
func (pm *ProfileManager) moveChildren(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", domain.ErrMoveFailed, dst, err)
	}
	entries, err := os.ReadDir(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", domain.ErrMoveFailed, src, err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.IsDir() {
			continue
		}
		if err := pm.moveDir(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Remove soft-deletes a mod into the deleted folder as <dirname>-<epoch ms>
// and returns the new path.
func (pm *ProfileManager) Remove(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	mod, err := pm.registry.Find(ctx, id)
	if err != nil {
		return "", err
	}

	target := pm.deletedTarget(filepath.Base(mod.Path))
	if err := pm.moveDir(mod.Path, target); err != nil {
		return "", err
	}
	pm.log.Infow("removed mod", "id", mod.ID(), "path", target)
	return target, nil
}

func (pm *ProfileManager) deletedTarget(base string) string {
	return filepath.Join(pm.data.DeletedPath, fmt.Sprintf("%s-%d", base, pm.now().UnixMilli()))
}

func (pm *ProfileManager) createDirs(name string) error {
	for _, dir := range []string{pm.data.EnabledPath(name), pm.data.DisabledPath(name)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating profile %s: %w", name, err)
		}
	}
	return nil
}

// pinActive writes the live profile to the marker unless it already names it.
func (pm *ProfileManager) pinActive() error {
	active, err := activeProfile(pm.data, pm.log)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(pm.data.MarkerPath())
	if err == nil && strings.TrimSpace(string(raw)) == active {
		return nil
	}
	pm.log.Debugw("pinning active profile", "profile", active)
	return pm.writeMarker(active)
}

func (pm *ProfileManager) writeMarker(name string) error {
	if err := os.MkdirAll(pm.data.ModsPath, 0755); err != nil {
		return fmt.Errorf("creating mods folder: %w", err)
	}
	if err := os.WriteFile(pm.data.MarkerPath(), []byte(name), 0644); err != nil {
		return fmt.Errorf("writing profile marker: %w", err)
	}
	return nil
}

// moveDir relocates src to dst. It never merges into an existing dst.
func (pm *ProfileManager) moveDir(src, dst string) error {
	if err := pm.mover.Move(src, dst); err != nil {
		return fmt.Errorf("%w: %s -> %s: %w", domain.ErrMoveFailed, src, dst, err)
	}
	return nil
}

func validateProfileName(name string) error {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("%w: invalid profile name %q", domain.ErrInvalidConfig, name)
	}
	return nil
}
