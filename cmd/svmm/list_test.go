package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Structure(t *testing.T) {
	assert.Equal(t, "list", listCmd.Use)
	assert.NotEmpty(t, listCmd.Short)
	assert.NotEmpty(t, listCmd.Long)

	assert.NotNil(t, listCmd.Flags().Lookup("active"))
	assert.NotNil(t, listCmd.Flags().Lookup("inactive"))
}

func TestListCmd_Table(t *testing.T) {
	env := newTestEnv(t)
	writeManifest(t, filepath.Join(env.modsDir(), "ContentPatcher"), patcherManifest)

	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Pathoschild.ContentPatcher")
	assert.Contains(t, out, "Content Patcher")
	assert.Contains(t, out, "active")
}

func TestListCmd_JSONFilters(t *testing.T) {
	env := newTestEnv(t)
	writeManifest(t, filepath.Join(env.modsDir(), "ContentPatcher"), patcherManifest)
	writeManifest(t, filepath.Join(env.modsDir(), "Farm"), farmManifest)

	_, err := env.run(t, "mod", "toggle", "Tester.Farm")
	require.NoError(t, err)

	decode := func(out string) []modView {
		var views []modView
		require.NoError(t, json.Unmarshal([]byte(out), &views))
		return views
	}

	out, err := env.run(t, "--json", "list")
	require.NoError(t, err)
	assert.Len(t, decode(out), 2)

	out, err = env.run(t, "--json", "list", "--inactive")
	require.NoError(t, err)
	inactive := decode(out)
	require.Len(t, inactive, 1)
	assert.Equal(t, "Tester.Farm", inactive[0].ID)
	assert.False(t, inactive[0].Active)
	require.Len(t, inactive[0].Depends, 2)

	out, err = env.run(t, "--json", "list", "--active")
	require.NoError(t, err)
	active := decode(out)
	require.Len(t, active, 1)
	assert.Equal(t, "Pathoschild.ContentPatcher", active[0].ID)
}

func TestListCmd_ActiveInactiveExclusive(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "list", "--active", "--inactive")
	assert.Error(t, err)
}
