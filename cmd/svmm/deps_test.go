package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepsCmd_Structure(t *testing.T) {
	assert.Equal(t, "deps", depsCmd.Use)
	assert.NotNil(t, depsCmd.Flags().Lookup("offline"))
}

func TestDeps_Offline(t *testing.T) {
	env := newTestEnv(t)
	writeManifest(t, filepath.Join(env.modsDir(), "Farm"), farmManifest)

	out, err := env.run(t, "--json", "deps", "--offline")
	require.NoError(t, err)

	var gaps []gapView
	require.NoError(t, json.Unmarshal([]byte(out), &gaps))
	require.Len(t, gaps, 2)
	assert.Equal(t, "Pathoschild.ContentPatcher", gaps[0].ID)
	assert.True(t, gaps[0].Required)
	assert.Equal(t, []string{"Tester.Farm"}, gaps[0].ForMods)
	assert.Equal(t, "Tester.Optional", gaps[1].ID)
	assert.False(t, gaps[1].Required)
}

func TestDeps_SatisfiedByActiveMod(t *testing.T) {
	env := newTestEnv(t)
	writeManifest(t, filepath.Join(env.modsDir(), "Farm"), farmManifest)
	writeManifest(t, filepath.Join(env.modsDir(), "ContentPatcher"), patcherManifest)

	out, err := env.run(t, "--json", "deps", "--offline")
	require.NoError(t, err)

	var gaps []gapView
	require.NoError(t, json.Unmarshal([]byte(out), &gaps))
	require.Len(t, gaps, 1)
	assert.Equal(t, "Tester.Optional", gaps[0].ID)
}

func TestDeps_Registry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "Pathoschild.ContentPatcher", "metadata": {"name": "Content Patcher", "nexusID": 1915, "main": {"url": "https://www.nexusmods.com/stardewvalley/mods/1915"}}},
			{"id": "Tester.Optional", "metadata": {}}
		]`))
	}))
	defer server.Close()

	env := newTestEnv(t)
	env.writeConfig(t, "registry_url: "+server.URL+"\n")
	writeManifest(t, filepath.Join(env.modsDir(), "Farm"), farmManifest)

	out, err := env.run(t, "deps")
	require.NoError(t, err)
	assert.Contains(t, out, "Pathoschild.ContentPatcher")
	assert.Contains(t, out, "https://www.nexusmods.com/stardewvalley/mods/1915")
	assert.Contains(t, out, "required")
	assert.Contains(t, out, "optional")
}

func TestDeps_RegistryDownUsesCache(t *testing.T) {
	var down atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"id": "Pathoschild.ContentPatcher", "metadata": {"name": "Content Patcher", "main": {"url": "https://example.com/cp"}}}]`))
	}))
	defer server.Close()

	env := newTestEnv(t)
	env.writeConfig(t, "registry_url: "+server.URL+"\n")
	writeManifest(t, filepath.Join(env.modsDir(), "Farm"), farmManifest)

	_, err := env.run(t, "deps")
	require.NoError(t, err)

	down.Store(true)
	out, err := env.run(t, "deps")
	require.NoError(t, err)
	assert.Contains(t, out, "Registry unavailable")
	assert.Contains(t, out, "https://example.com/cp")
}
