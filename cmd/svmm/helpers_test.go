package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// testEnv is an isolated config directory and game install.
type testEnv struct {
	configDir string
	gameDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range []string{"SVMM_CONFIG", "SVMM_GAME_DIR", "SVMM_NEXUS_API_KEY", "SVMM_LOG_LEVEL", "SVMM_JSON", "SVMM_VERBOSE", "SVMM_NO_COLOR"} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")
	return &testEnv{configDir: t.TempDir(), gameDir: t.TempDir()}
}

// run executes the root command against the environment and returns
// everything written to stdout and stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCmd(t, append([]string{"--config", e.configDir, "--game-dir", e.gameDir}, args...)...)
}

func (e *testEnv) modsDir() string {
	return filepath.Join(e.gameDir, "Mods")
}

func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(content), 0644))
}

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	flushLog()
	return buf.String(), err
}

// resetFlags restores every flag to its default so state does not leak
// between executions of the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// writeManifest creates dir/manifest.json with the given content.
func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(content), 0644))
}

func createTestZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

const (
	patcherManifest = `{
	"Name": "Content Patcher",
	"Author": "Pathoschild",
	"Version": "2.0.0",
	"UniqueID": "Pathoschild.ContentPatcher",
	"UpdateKeys": ["Nexus:1915", "GitHub:Pathoschild/StardewMods"]
}`
	farmManifest = `{
	"Name": "Farm Expansion",
	"Author": "Tester",
	"Version": "1.0.0",
	"UniqueID": "Tester.Farm",
	"Dependencies": [
		{"UniqueID": "Pathoschild.ContentPatcher", "IsRequired": true},
		{"UniqueID": "Tester.Optional", "IsRequired": false}
	]
}`
)
