package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes timelinectl against a file backend in dir and returns stdout
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("STORAGE_PATH", dir)
	t.Setenv("GIN_MODE", "test")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestResetSampleAndStats(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "reset-sample")
	require.NoError(t, err)
	assert.Contains(t, out, "6 dynasties, 14 kings, 6 events, 4 wars")

	out, err = run(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Mughal Empire")
	assert.Contains(t, out, "Lodi Dynasty")

	_, err = os.Stat(filepath.Join(dir, "timeline_dynasties.json"))
	assert.NoError(t, err)
}

func TestExportImport(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()

	_, err := run(t, src, "reset-sample")
	require.NoError(t, err)

	exportFile := filepath.Join(t.TempDir(), "export.json")
	_, err = run(t, src, "export", "-o", exportFile)
	require.NoError(t, err)

	out, err := run(t, dst, "import", "--no-progress", exportFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 6 dynasties, 14 kings, 6 events, 4 wars")

	srcExport, err := run(t, src, "export")
	require.NoError(t, err)
	dstExport, err := run(t, dst, "export")
	require.NoError(t, err)
	assert.Equal(t, withoutDate(t, srcExport), withoutDate(t, dstExport))
}

func withoutDate(t *testing.T, export string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(export), &m))
	delete(m, "exportDate")
	return m
}

func TestImportRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "reset-sample")
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"dynasties": []}`), 0o644))

	_, err = run(t, dir, "import", "--no-progress", bad)
	assert.ErrorContains(t, err, "missing keys")

	out, err := run(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Mughal Empire", "data is untouched")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "reset-sample")
	require.NoError(t, err)

	out, err := run(t, dir, "validate", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "No warnings")

	// Move Babur's reign before the Mughal Empire
	kings := filepath.Join(dir, "timeline_kings.json")
	data, err := os.ReadFile(kings)
	require.NoError(t, err)
	data = bytes.Replace(data, []byte(`"startYear":1526,"endYear":1530`), []byte(`"startYear":1500,"endYear":1530`), 1)
	require.NoError(t, os.WriteFile(kings, data, 0o644))

	out, err = run(t, dir, "validate", "--strict")
	assert.Error(t, err)
	assert.Contains(t, out, "king-before-dynasty")

	_, err = run(t, dir, "validate", "--level", "fatal")
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "reset-sample")
	require.NoError(t, err)

	out, err := run(t, dir, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")

	out, err = run(t, dir, "stats")
	require.NoError(t, err)
	assert.NotContains(t, out, "Mughal Empire")

	_, err = run(t, dir, "clear", "--purge")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "timeline_dynasties.json"))
	assert.True(t, os.IsNotExist(err))
}
