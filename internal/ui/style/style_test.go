package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabled_ReturnsInputUnchanged(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("STZ_NO_COLOR", "")
	Init(false)

	require.False(t, Enabled())
	require.Equal(t, "hello", Success("hello"))
	require.Equal(t, "hello", Warning("hello"))
	require.Equal(t, "hello", Error("hello"))
	require.Equal(t, "hello", Header("hello"))
	require.Equal(t, "hello", Muted("hello"))
	require.Equal(t, "hello", Key("hello"))
}

func TestNoColorEnvDisables(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	Init(true)

	require.False(t, Enabled())
	require.Equal(t, "plain", Error("plain"))
}

func TestStzNoColorEnvDisables(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("STZ_NO_COLOR", "yes")
	Init(true)

	require.False(t, Enabled())
}

func TestEnabled_AddsStyling(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("STZ_NO_COLOR", "")
	Init(true)
	t.Cleanup(func() { Init(false) })

	require.True(t, Enabled())
	styled := Header("heading")
	require.True(t, strings.Contains(styled, "heading"))
	require.True(t, strings.Contains(styled, "\x1b["), "expected ANSI escape in %q", styled)
}
