// Package messages renders user-facing text for structured store errors.
// The store layer raises a stable kind plus positional tokens; this package
// owns the templates. It is the only place error text lives.
package messages

import (
	"errors"
	"fmt"

	"github.com/stanza-tools/cli/internal/alias"
	"github.com/stanza-tools/cli/internal/store"
)

var templates = map[store.Kind]string{
	store.KindMissingGroupName:  "a group name is required",
	store.KindNotFound:          "no config file found at %s",
	store.KindParseError:        "config file %s contains invalid JSON",
	store.KindInvalidGroupShape: "group %q in %s is not a key-value mapping",
	alias.KindEmptyInput:        "provide at least one name=value pair",
	alias.KindInvalidFormat:     "invalid entry %q, expected name=value",
	alias.KindNoAliasesFound:    "no aliases found",
}

// Render returns user-facing text for err. Structured store errors are
// rendered through their kind's template with tokens interpolated; anything
// else falls back to err.Error().
func Render(err error) string {
	var se *store.Error
	if !errors.As(err, &se) {
		return err.Error()
	}

	tmpl, ok := templates[se.Kind]
	if !ok {
		return se.Error()
	}

	args := make([]any, len(se.Tokens))
	for i, t := range se.Tokens {
		args[i] = t
	}
	return fmt.Sprintf(tmpl, args...)
}
