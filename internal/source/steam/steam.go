// Package steam locates a game installed through Steam.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// StardewValleyAppID is the Steam app ID of Stardew Valley.
const StardewValleyAppID = "413150"

// FindSteamRoots returns existing Steam installation roots in search order.
// $STEAM_ROOT, when set, is tried first.
func FindSteamRoots() []string {
	var candidates []string
	if p := os.Getenv("STEAM_ROOT"); p != "" {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, platformRoots(runtime.GOOS)...)

	var out []string
	seen := make(map[string]bool)
	for _, p := range candidates {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}

func platformRoots(goos string) []string {
	home, _ := homedir.Dir()
	switch goos {
	case "windows":
		roots := []string{`C:\Program Files (x86)\Steam`, `C:\Program Files\Steam`}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			roots = append(roots, filepath.Join(local, "Steam"))
		}
		return roots
	case "darwin":
		if home == "" {
			return nil
		}
		return []string{filepath.Join(home, "Library", "Application Support", "Steam")}
	default:
		if home == "" {
			return nil
		}
		return []string{
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		}
	}
}

// GetLibraryPaths returns all Steam library paths from a Steam root (reading libraryfolders.vdf).
// A missing or empty file means the root is the only library.
func GetLibraryPaths(steamRoot string) ([]string, error) {
	f, err := os.Open(filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{steamRoot}, nil
		}
		return nil, fmt.Errorf("reading libraryfolders: %w", err)
	}
	defer f.Close()

	root, err := ParseVDF(f)
	if err != nil {
		return nil, fmt.Errorf("parsing libraryfolders: %w", err)
	}
	paths := libraryPaths(root)
	if len(paths) == 0 {
		return []string{steamRoot}, nil
	}
	return paths, nil
}

// FindGameInLibrary returns the install directory of appID or dirName inside
// one library, or "" when the game is not there. The app manifest wins; the
// common/ folder is matched case-insensitively as a fallback.
func FindGameInLibrary(library, appID, dirName string) string {
	steamapps := filepath.Join(library, "steamapps")

	if f, err := os.Open(filepath.Join(steamapps, "appmanifest_"+appID+".acf")); err == nil {
		m, err := ParseAppManifest(f)
		f.Close()
		if err == nil && m.InstallDir != "" {
			p := filepath.Join(steamapps, "common", m.InstallDir)
			if isDir(p) {
				return p
			}
		}
	}

	entries, err := os.ReadDir(filepath.Join(steamapps, "common"))
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() && strings.EqualFold(e.Name(), dirName) {
			return filepath.Join(steamapps, "common", e.Name())
		}
	}
	return ""
}

// FindGameDir searches every Steam library for the game and returns its
// install directory, or "" when none has it.
func FindGameDir(appID, dirName string) string {
	for _, root := range FindSteamRoots() {
		libraries, err := GetLibraryPaths(root)
		if err != nil {
			continue
		}
		for _, lib := range libraries {
			if p := FindGameInLibrary(lib, appID, dirName); p != "" {
				return p
			}
		}
	}
	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
