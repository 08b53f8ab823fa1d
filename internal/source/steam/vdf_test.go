package steam

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVDF_LibraryFolders(t *testing.T) {
	vdf := `
// written by steam
"libraryfolders"
{
	"0"
	{
		"path"		"/home/user/.steam/steam"
		"label"		""
		"apps"
		{
			"413150"		"1234"
		}
	}
	"1"
	{
		"path"		"D:\\SteamLibrary"
		"label"		"Games"
	}
}
`
	root, err := ParseVDF(strings.NewReader(vdf))
	require.NoError(t, err)

	lf, ok := root.Block("LibraryFolders")
	require.True(t, ok)
	first, ok := lf.Block("0")
	require.True(t, ok)
	apps, ok := first.Block("apps")
	require.True(t, ok)
	size, _ := apps.String("413150")
	assert.Equal(t, "1234", size)

	assert.Equal(t, []string{"/home/user/.steam/steam", `D:\SteamLibrary`}, libraryPaths(root))
}

func TestLibraryPaths_LegacyFormat(t *testing.T) {
	vdf := `
"LibraryFolders"
{
	"TimeNextStatsReport"	"1234"
	"0"	"/mnt/old"
	"1"	"/mnt/older"
}
`
	root, err := ParseVDF(strings.NewReader(vdf))
	require.NoError(t, err)
	assert.Equal(t, []string{"/mnt/old", "/mnt/older"}, libraryPaths(root))
}

func TestParseAppManifest(t *testing.T) {
	acf := `
"AppState"
{
	"appid"		"413150"
	"name"		"Stardew Valley"
	"installdir"		"Stardew Valley"
}
`
	m, err := ParseAppManifest(strings.NewReader(acf))
	require.NoError(t, err)
	assert.Equal(t, "413150", m.AppID)
	assert.Equal(t, "Stardew Valley", m.Name)
	assert.Equal(t, "Stardew Valley", m.InstallDir)
}

func TestParseAppManifest_MissingState(t *testing.T) {
	_, err := ParseAppManifest(strings.NewReader(`"Other" { }`))
	assert.Error(t, err)
}

func TestParseVDF_Malformed(t *testing.T) {
	tests := []struct {
		name string
		vdf  string
		msg  string
	}{
		{"key without value", `"libraryfolders"`, "has no value"},
		{"unclosed block", `"a" { "b" "c"`, "missing '}'"},
		{"stray close", `"a" "b" }`, "unexpected '}'"},
		{"unterminated string", `"a" "b`, "unterminated string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVDF(strings.NewReader(tt.vdf))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseVDF_Empty(t *testing.T) {
	root, err := ParseVDF(strings.NewReader("   \n"))
	require.NoError(t, err)
	assert.Empty(t, root)
}
