package store

import (
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

// TestGroup_RoundTripProperty proves that any grouped contents built purely
// from SetInGroup calls survives a write, a fresh load from the same file,
// and an object conversion cycle with groups, keys and values intact.
func TestGroup_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "stanza.json")

		groupName := rapid.StringMatching(`[a-zA-Z][a-zA-Z0-9_.-]{0,15}`)
		keyName := rapid.StringMatching(`[a-zA-Z][a-zA-Z0-9_.-]{0,15}`)
		value := rapid.OneOf(
			rapid.String().AsAny(),
			rapid.Bool().AsAny(),
			rapid.Float64Range(-1e6, 1e6).AsAny(),
		)

		doc := rapid.MapOfN(groupName, rapid.MapOfN(keyName, value, 1, 5), 1, 4).Draw(rt, "doc")

		g := NewGroup(path, WithCreateIfMissing())
		for group, entries := range doc {
			for k, v := range entries {
				g.SetInGroup(k, v, group)
			}
		}

		if err := g.Write(); err != nil {
			rt.Fatalf("write: %v", err)
		}

		fresh := NewGroup(path)
		if _, err := fresh.Read(); err != nil {
			rt.Fatalf("read: %v", err)
		}

		for group, entries := range doc {
			for k, want := range entries {
				got, ok := fresh.GetInGroup(k, group)
				if !ok {
					rt.Fatalf("key %q missing from group %q after reload", k, group)
				}
				if got != want {
					rt.Fatalf("group %q key %q: got %v, want %v", group, k, got, want)
				}
			}
		}

		// setContentsFromObject(toObject()) reproduces an equivalent
		// structure.
		rebuilt := NewGroup(filepath.Join(dir, "copy.json"), WithCreateIfMissing())
		obj := make(map[string]any)
		for k, v := range fresh.ToObject() {
			obj[k] = v
		}
		if err := rebuilt.SetContentsFromObject(obj); err != nil {
			rt.Fatalf("setContentsFromObject: %v", err)
		}
		for group, entries := range doc {
			for k, want := range entries {
				got, ok := rebuilt.GetInGroup(k, group)
				if !ok || got != want {
					rt.Fatalf("rebuilt group %q key %q: got %v (ok=%v), want %v", group, k, got, ok, want)
				}
			}
		}
	})
}
