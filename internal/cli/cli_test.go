package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stanza-tools/cli/internal/alias"
	"github.com/stanza-tools/cli/internal/messages"
	"github.com/stanza-tools/cli/internal/store"
)

// runCLI executes one stz invocation against the store file at path.
func runCLI(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	root := NewRootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--file", path}, args...))
	err := root.Execute()
	return buf.String(), err
}

func testStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "stanza.json")
}

func TestConfigSetAndGet(t *testing.T) {
	path := testStorePath(t)

	out, err := runCLI(t, path, "config", "set", "editor", "vim")
	require.NoError(t, err)
	require.Contains(t, out, "editor")

	out, err = runCLI(t, path, "config", "get", "editor")
	require.NoError(t, err)
	require.Equal(t, "vim\n", out)
}

func TestConfigGet_NotSet(t *testing.T) {
	out, err := runCLI(t, testStorePath(t), "config", "get", "missing")
	require.NoError(t, err)
	require.Contains(t, out, "missing is not set")
}

func TestConfigGet_JSON(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "config", "set", "editor", "vim")
	require.NoError(t, err)

	out, err := runCLI(t, path, "--json", "config", "get", "editor")
	require.NoError(t, err)

	var result struct {
		Group string `json:"group"`
		Key   string `json:"key"`
		Value string `json:"value"`
		Set   bool   `json:"set"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, "default", result.Group)
	require.Equal(t, "editor", result.Key)
	require.Equal(t, "vim", result.Value)
	require.True(t, result.Set)
}

func TestConfigSet_ExplicitGroup(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "config", "set", "url", "https://example.test", "--group", "endpoints")
	require.NoError(t, err)

	out, err := runCLI(t, path, "config", "get", "url", "--group", "endpoints")
	require.NoError(t, err)
	require.Equal(t, "https://example.test\n", out)

	// Unqualified lookup targets the default group, which stays empty.
	out, err = runCLI(t, path, "config", "get", "url")
	require.NoError(t, err)
	require.Contains(t, out, "is not set")
}

func TestConfigUnset(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "config", "set", "a", "1")
	require.NoError(t, err)
	_, err = runCLI(t, path, "config", "unset", "a")
	require.NoError(t, err)

	out, err := runCLI(t, path, "config", "get", "a")
	require.NoError(t, err)
	require.Contains(t, out, "is not set")
}

func TestConfigList_Text(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "config", "set", "a", "1")
	require.NoError(t, err)
	_, err = runCLI(t, path, "config", "set", "b", "2", "--group", "other")
	require.NoError(t, err)

	out, err := runCLI(t, path, "config", "list")
	require.NoError(t, err)
	require.Contains(t, out, "[default]")
	require.Contains(t, out, "[other]")
	require.Contains(t, out, "a = 1")
	require.Contains(t, out, "b = 2")
}

func TestConfigList_Empty(t *testing.T) {
	out, err := runCLI(t, testStorePath(t), "config", "list")
	require.NoError(t, err)
	require.Contains(t, out, "no entries")
}

func TestConfigList_YAML(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "config", "set", "a", "1")
	require.NoError(t, err)

	out, err := runCLI(t, path, "config", "list", "--format", "yaml")
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Equal(t, "1", doc["default"]["a"])
}

func TestConfigList_JSONGroup(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "config", "set", "k", "v", "--group", "g")
	require.NoError(t, err)

	out, err := runCLI(t, path, "config", "list", "--group", "g", "--format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, map[string]any{"k": "v"}, doc)
}

func TestConfigList_UnknownFormat(t *testing.T) {
	_, err := runCLI(t, testStorePath(t), "config", "list", "--format", "toml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown format")
}

func TestConfigClear(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "config", "set", "k", "v", "--group", "scratch")
	require.NoError(t, err)
	_, err = runCLI(t, path, "config", "clear", "--group", "scratch")
	require.NoError(t, err)

	g := store.NewGroup(path)
	_, err = g.Read()
	require.NoError(t, err)
	_, ok := g.GetGroup("scratch")
	require.False(t, ok)
}

func TestAliasSetAndList(t *testing.T) {
	path := testStorePath(t)

	out, err := runCLI(t, path, "alias", "set", "dev=00Dxx", "prod=00Dyy")
	require.NoError(t, err)
	require.Contains(t, out, "dev")
	require.Contains(t, out, "prod")

	out, err = runCLI(t, path, "alias", "list")
	require.NoError(t, err)
	require.Contains(t, out, "dev = 00Dxx")
	require.Contains(t, out, "prod = 00Dyy")
}

func TestAliasList_EmptyFails(t *testing.T) {
	_, err := runCLI(t, testStorePath(t), "alias", "list")
	require.Error(t, err)
	require.True(t, store.IsKind(err, alias.KindNoAliasesFound))
	require.Equal(t, "no aliases found", messages.Render(err))
}

func TestAliasSet_InvalidFormat(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "alias", "set", "good=1", "bad")
	require.Error(t, err)
	require.True(t, store.IsKind(err, alias.KindInvalidFormat))

	// Nothing was applied.
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestAliasSet_EmptyInput(t *testing.T) {
	_, err := runCLI(t, testStorePath(t), "alias", "set")
	require.Error(t, err)
	require.True(t, store.IsKind(err, alias.KindEmptyInput))
}

func TestAliasUnset(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "alias", "set", "dev=00Dxx")
	require.NoError(t, err)
	_, err = runCLI(t, path, "alias", "unset", "dev")
	require.NoError(t, err)

	_, err = runCLI(t, path, "alias", "list")
	require.Error(t, err)
	require.True(t, store.IsKind(err, alias.KindNoAliasesFound))
}

func TestAliasResolve(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "alias", "set", "dev=00Dxx")
	require.NoError(t, err)

	out, err := runCLI(t, path, "alias", "resolve", "dev")
	require.NoError(t, err)
	require.Equal(t, "00Dxx\n", out)

	out, err = runCLI(t, path, "alias", "resolve", "--value", "00Dxx")
	require.NoError(t, err)
	require.Equal(t, "dev\n", out)

	out, err = runCLI(t, path, "alias", "resolve", "unknown")
	require.NoError(t, err)
	require.Contains(t, out, "not an alias")
}

func TestAliasResolve_NoArgs(t *testing.T) {
	_, err := runCLI(t, testStorePath(t), "alias", "resolve")
	require.Error(t, err)
}

func TestAlias_ExplicitGroupFlag(t *testing.T) {
	path := testStorePath(t)

	_, err := runCLI(t, path, "alias", "set", "dev=00Dxx", "--group", "sandboxes")
	require.NoError(t, err)

	// Default "orgs" group stays empty.
	_, err = runCLI(t, path, "alias", "list")
	require.Error(t, err)

	out, err := runCLI(t, path, "alias", "list", "--group", "sandboxes")
	require.NoError(t, err)
	require.Contains(t, out, "dev = 00Dxx")
}
