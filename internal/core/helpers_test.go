package core_test

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// createTestZip writes files into a zip at dir/name and returns its path.
func createTestZip(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()
	zipPath := filepath.Join(dir, name)
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for entry, content := range files {
		fw, err := w.Create(entry)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return zipPath
}

type testDep struct {
	id       string
	required bool
}

// manifestJSON renders a minimal manifest for id with optional dependencies.
func manifestJSON(t *testing.T, id string, deps ...testDep) string {
	t.Helper()
	m := map[string]any{
		"Name":     id + " Name",
		"Author":   "Tester",
		"Version":  "1.0.0",
		"UniqueID": id,
	}
	if len(deps) > 0 {
		list := make([]map[string]any, len(deps))
		for i, d := range deps {
			list[i] = map[string]any{"UniqueID": d.id, "IsRequired": d.required}
		}
		m["Dependencies"] = list
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	return string(data)
}

// writeMod creates dir/manifest.json for id and returns dir.
func writeMod(t *testing.T, dir, id string, deps ...testDep) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifestJSON(t, id, deps...)), 0644))
	return dir
}

// touch sets a file's modification time.
func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}
