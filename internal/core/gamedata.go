package core

import (
	"path/filepath"

	"svmm/internal/domain"
)

const (
	managerDirName  = "SVMM"
	profilesDirName = "profiles"
	deletedDirName  = "deleted"
	enabledDirName  = "enabled"
	disabledDirName = "disabled"
	profileMarker   = ".profile"
)

// DefaultProfiles are created by Bootstrap when no profile exists yet.
var DefaultProfiles = []string{"Profile 1", "Profile 2", "Profile 3"}

// GameData holds the filesystem layout derived from a game install path.
//
//	<install>/Mods                         live mods root, holds the .profile marker
//	<install>/SVMM/profiles/<name>/enabled  a stashed profile's active set
//	<install>/SVMM/profiles/<name>/disabled a profile's inactive mods
//	<install>/SVMM/deleted                 soft-deleted mods
type GameData struct {
	InstallPath  string
	ManagerPath  string
	ProfilesPath string
	DeletedPath  string
	ModsPath     string
}

// NewGameData derives the layout for a game installed at installPath.
func NewGameData(game domain.Game, installPath string) GameData {
	manager := filepath.Join(installPath, managerDirName)
	return GameData{
		InstallPath:  installPath,
		ManagerPath:  manager,
		ProfilesPath: filepath.Join(manager, profilesDirName),
		DeletedPath:  filepath.Join(manager, deletedDirName),
		ModsPath:     filepath.Join(installPath, game.ModsDir),
	}
}

// ProfilePath returns the directory of the named profile.
func (g GameData) ProfilePath(name string) string {
	return filepath.Join(g.ProfilesPath, name)
}

// EnabledPath is where a profile's active mods rest while another profile is live.
func (g GameData) EnabledPath(name string) string {
	return filepath.Join(g.ProfilePath(name), enabledDirName)
}

// DisabledPath holds a profile's inactive mods.
func (g GameData) DisabledPath(name string) string {
	return filepath.Join(g.ProfilePath(name), disabledDirName)
}

// MarkerPath is the file naming the live profile.
func (g GameData) MarkerPath() string {
	return filepath.Join(g.ModsPath, profileMarker)
}

// DatabasePath is the SQLite file for the registry cache and switch journal.
func (g GameData) DatabasePath() string {
	return filepath.Join(g.ManagerPath, "svmm.db")
}
