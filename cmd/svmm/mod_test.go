package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModCmd_Structure(t *testing.T) {
	var subCmds []string
	for _, cmd := range modCmd.Commands() {
		subCmds = append(subCmds, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"show", "toggle", "remove"}, subCmds)
}

func TestModShow_Links(t *testing.T) {
	env := newTestEnv(t)
	writeManifest(t, filepath.Join(env.modsDir(), "ContentPatcher"), patcherManifest)

	out, err := env.run(t, "mod", "show", "Pathoschild.ContentPatcher")
	require.NoError(t, err)
	assert.Contains(t, out, "Content Patcher")
	assert.Contains(t, out, "https://nexusmods.com/stardewvalley/mods/1915")
	assert.Contains(t, out, "https://github.com/Pathoschild/StardewMods")

	out, err = env.run(t, "--json", "mod", "show", "Pathoschild.ContentPatcher")
	require.NoError(t, err)
	var view modView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.NotNil(t, view.Links)
	assert.Equal(t, "https://nexusmods.com/stardewvalley/mods/1915", view.Links.Nexus)
	assert.Empty(t, view.Links.ModDrop)
}

func TestModShow_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "mod", "show", "Nobody.Mod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mod not found")
}

func TestModToggle_TwiceRestores(t *testing.T) {
	env := newTestEnv(t)
	modDir := filepath.Join(env.modsDir(), "ContentPatcher")
	writeManifest(t, modDir, patcherManifest)

	out, err := env.run(t, "mod", "toggle", "Pathoschild.ContentPatcher")
	require.NoError(t, err)
	assert.Contains(t, out, "is now inactive")
	assert.NoDirExists(t, modDir)

	out, err = env.run(t, "mod", "toggle", "Pathoschild.ContentPatcher")
	require.NoError(t, err)
	assert.Contains(t, out, "is now active")
	assert.DirExists(t, modDir)
}

func TestModRemove_MovesToDeleted(t *testing.T) {
	env := newTestEnv(t)
	modDir := filepath.Join(env.modsDir(), "ContentPatcher")
	writeManifest(t, modDir, patcherManifest)

	_, err := env.run(t, "mod", "remove", "Pathoschild.ContentPatcher")
	require.NoError(t, err)
	assert.NoDirExists(t, modDir)

	entries, err := os.ReadDir(filepath.Join(env.gameDir, "SVMM", "deleted"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "ContentPatcher-")
}
