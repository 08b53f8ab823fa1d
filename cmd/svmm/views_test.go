package main

import (
	"testing"
	"time"

	"svmm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSwitchViews_FinishedOnlyWhenDone(t *testing.T) {
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	views := toSwitchViews(
		domain.SwitchRecord{ID: "a", From: "P1", To: "P2", Phase: domain.SwitchRestore, StartedAt: started},
		domain.SwitchRecord{ID: "b", From: "P2", To: "P1", Phase: domain.SwitchDone, StartedAt: started, FinishedAt: started.Add(time.Second)},
	)
	require.Len(t, views, 2)
	assert.Nil(t, views[0].FinishedAt)
	assert.Equal(t, "restore", views[0].Phase)
	require.NotNil(t, views[1].FinishedAt)
	assert.Equal(t, started.Add(time.Second), *views[1].FinishedAt)
}

func TestToResolvedViews(t *testing.T) {
	views := toResolvedViews([]domain.ResolvedDependency{{
		MissingDependency: domain.MissingDependency{UniqueID: "A.B", ForMods: []string{"X"}, Required: true},
		Mod:               domain.RegistryMod{ID: "A.B", Name: "AB", URL: "https://example.com"},
		Resolved:          true,
		Summary:           "does things",
	}})
	require.Len(t, views, 1)
	assert.Equal(t, gapView{
		ID:       "A.B",
		Required: true,
		ForMods:  []string{"X"},
		Resolved: true,
		Name:     "AB",
		URL:      "https://example.com",
		Summary:  "does things",
	}, views[0])
}

func TestToArchiveView(t *testing.T) {
	view := toArchiveView(domain.ZipArchiveCandidate{
		Path: "/dl/a.zip",
		Manifests: []domain.ArchivedManifest{
			{Entry: "A/manifest.json", Manifest: domain.ModManifest{UniqueID: " A.A "}},
		},
	})
	assert.Equal(t, []string{"A.A"}, view.Mods)
}

func TestStateLabel_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "active", stateLabel(true))
	assert.Equal(t, "inactive", stateLabel(false))
	assert.Equal(t, "required", requiredLabel(true))
	assert.Equal(t, "optional", requiredLabel(false))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ab", truncate("abcdefgh", 2))
}
