package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppDataDir_ReturnsNonEmpty(t *testing.T) {
	dir := AppDataDir()
	require.NotEmpty(t, dir)
}

func TestAppDataDir_HomeOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "custom-home")
	t.Setenv("STANZA_HOME", override)

	require.Equal(t, override, AppDataDir())

	// The directory is created with restrictive permissions.
	info, err := os.Stat(override)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestAppDataDir_ContainsAppName(t *testing.T) {
	t.Setenv("STANZA_HOME", "")
	dir := AppDataDir()
	require.True(t, strings.Contains(strings.ToLower(dir), "stanza"),
		"AppDataDir should contain 'stanza': %s", dir)
}

func TestStoreFilePath(t *testing.T) {
	t.Setenv("STANZA_HOME", t.TempDir())
	path := StoreFilePath()
	require.Equal(t, "stanza.json", filepath.Base(path))
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("STANZA_HOME", t.TempDir())
	path := LogFilePath()
	require.Equal(t, "stz.log", filepath.Base(path))
}
