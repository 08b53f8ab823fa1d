package db_test

import (
	"path/filepath"
	"testing"

	"svmm/internal/domain"
	"svmm/internal/storage/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestNew_RunsMigrations(t *testing.T) {
	database := newTestDB(t)

	var count int
	assert.NoError(t, database.QueryRow("SELECT COUNT(*) FROM registry_cache").Scan(&count))
	assert.NoError(t, database.QueryRow("SELECT COUNT(*) FROM profile_switches").Scan(&count))

	version, err := database.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestNew_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svmm.db")

	first, err := db.New(path)
	require.NoError(t, err)
	require.NoError(t, first.SaveRegistryMods([]domain.RegistryMod{{ID: "A.B", Name: "AB"}}))
	require.NoError(t, first.Close())

	second, err := db.New(path)
	require.NoError(t, err)
	defer second.Close()

	mods, err := second.GetRegistryMods([]string{"A.B"})
	require.NoError(t, err)
	assert.Len(t, mods, 1)
}

func TestRegistryCache_SaveAndGet(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.SaveRegistryMods([]domain.RegistryMod{
		{ID: "Pathoschild.ContentPatcher", Name: "Content Patcher", URL: "https://www.nexusmods.com/stardewvalley/mods/1915", NexusID: 1915},
		{ID: "spacechase0.SpaceCore", Name: "SpaceCore", URL: "https://github.com/spacechase0/StardewValleyMods"},
	}))

	mods, err := database.GetRegistryMods([]string{"pathoschild.contentpatcher", "Unknown.Mod"})
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "Pathoschild.ContentPatcher", mods[0].ID)
	assert.Equal(t, 1915, mods[0].NexusID)
}

func TestRegistryCache_Upsert(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.SaveRegistryMods([]domain.RegistryMod{{ID: "X", Name: "Old"}}))
	require.NoError(t, database.SaveRegistryMods([]domain.RegistryMod{{ID: "X", Name: "New", NexusID: 7}}))

	mods, err := database.GetRegistryMods([]string{"X"})
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "New", mods[0].Name)
	assert.Equal(t, 7, mods[0].NexusID)
}

func TestRegistryCache_Empty(t *testing.T) {
	database := newTestDB(t)

	assert.NoError(t, database.SaveRegistryMods(nil))
	mods, err := database.GetRegistryMods(nil)
	assert.NoError(t, err)
	assert.Empty(t, mods)
}

func TestJournal_Lifecycle(t *testing.T) {
	database := newTestDB(t)

	pending, err := database.PendingSwitch()
	require.NoError(t, err)
	assert.Nil(t, pending)

	id, err := database.BeginSwitch("Profile 1", "Profile 2")
	require.NoError(t, err)
	assert.Len(t, id, 26)

	pending, err = database.PendingSwitch()
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, id, pending.ID)
	assert.Equal(t, "Profile 1", pending.From)
	assert.Equal(t, "Profile 2", pending.To)
	assert.Equal(t, domain.SwitchStash, pending.Phase)
	assert.True(t, pending.FinishedAt.IsZero())

	require.NoError(t, database.SetSwitchPhase(id, domain.SwitchRestore))
	pending, err = database.PendingSwitch()
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, domain.SwitchRestore, pending.Phase)

	require.NoError(t, database.SetSwitchPhase(id, domain.SwitchDone))
	pending, err = database.PendingSwitch()
	require.NoError(t, err)
	assert.Nil(t, pending)

	recent, err := database.RecentSwitches(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.False(t, recent[0].FinishedAt.IsZero())
	assert.False(t, recent[0].Pending())
}

func TestJournal_UnknownID(t *testing.T) {
	database := newTestDB(t)
	assert.Error(t, database.SetSwitchPhase("nope", domain.SwitchDone))
}

func TestJournal_RecentOrder(t *testing.T) {
	database := newTestDB(t)

	first, err := database.BeginSwitch("A", "B")
	require.NoError(t, err)
	second, err := database.BeginSwitch("B", "C")
	require.NoError(t, err)

	recent, err := database.RecentSwitches(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second, recent[0].ID)
	assert.Equal(t, first, recent[1].ID)
}
