package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
)

// TestParseBindingKeys verifies key parsing behavior for configured overrides.
func TestParseBindingKeys(t *testing.T) {
	t.Run("space aliases", func(t *testing.T) {
		keys, help := parseBindingKeys("space", "x")
		if len(keys) != 2 || keys[0] != " " || keys[1] != "space" {
			t.Fatalf("unexpected parsed space keys %#v", keys)
		}
		if help != "space" {
			t.Fatalf("unexpected space help text %q", help)
		}
	})

	t.Run("literal space", func(t *testing.T) {
		keys, _ := parseBindingKeys(" ", "x")
		if len(keys) != 2 || keys[1] != "space" {
			t.Fatalf("unexpected parsed literal space keys %#v", keys)
		}
	})

	t.Run("uppercase rune includes shift alias", func(t *testing.T) {
		keys, help := parseBindingKeys("D", "d")
		if len(keys) != 2 || keys[0] != "D" || keys[1] != "shift+d" {
			t.Fatalf("unexpected uppercase parsed keys %#v", keys)
		}
		if help != "D" {
			t.Fatalf("unexpected uppercase help text %q", help)
		}
	})

	t.Run("multi rune lowercases key matcher", func(t *testing.T) {
		keys, help := parseBindingKeys("Ctrl+D", "d")
		if len(keys) != 1 || keys[0] != "ctrl+d" {
			t.Fatalf("unexpected multi-rune parsed keys %#v", keys)
		}
		if help != "Ctrl+D" {
			t.Fatalf("unexpected multi-rune help text %q", help)
		}
	})

	t.Run("blank uses fallback", func(t *testing.T) {
		keys, help := parseBindingKeys("", "x")
		if len(keys) != 1 || keys[0] != "x" {
			t.Fatalf("unexpected fallback parsed keys %#v", keys)
		}
		if help != "x" {
			t.Fatalf("unexpected fallback help text %q", help)
		}
	})
}

// TestConfigureBinding verifies binding override application behavior.
func TestConfigureBinding(t *testing.T) {
	b := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "old"))
	configureBinding(&b, "x", "d", "delete task")
	keys := b.Keys()
	if len(keys) != 1 || keys[0] != "x" {
		t.Fatalf("unexpected configured keys %#v", keys)
	}
	if b.Help().Key != "x" || b.Help().Desc != "delete task" {
		t.Fatalf("unexpected configured help %#v", b.Help())
	}

	configureBinding(&b, "   ", "d", "ignored")
	if got := b.Keys(); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected blank override to keep keys, got %#v", got)
	}
}

// TestKeyMapApplyConfig verifies dynamic key map override behavior.
func TestKeyMapApplyConfig(t *testing.T) {
	k := newKeyMap()
	k.applyConfig(KeyConfig{
		Toggle: "x",
		Delete: "X",
		Copy:   "",
		Help:   "h",
	})

	assertKeys := func(name string, binding key.Binding, expected ...string) {
		t.Helper()
		got := binding.Keys()
		if len(got) != len(expected) {
			t.Fatalf("%s key count mismatch got=%#v expected=%#v", name, got, expected)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Fatalf("%s key mismatch got=%#v expected=%#v", name, got, expected)
			}
		}
	}

	assertKeys("toggle", k.toggleTask, "x")
	assertKeys("delete", k.deleteTask, "X", "shift+x")
	assertKeys("copy", k.copyTask, "y")
	assertKeys("help", k.toggleHelp, "h")
}

// TestInputHelpOmitsListBindings verifies focus-specific short help.
func TestInputHelpOmitsListBindings(t *testing.T) {
	h := inputHelp{newKeyMap()}
	for _, binding := range h.ShortHelp() {
		if binding.Help().Desc == "delete task" {
			t.Fatal("expected input help to hide list-only bindings")
		}
	}
	if len(h.FullHelp()) != 3 {
		t.Fatalf("unexpected full help groups %d", len(h.FullHelp()))
	}
}

// TestValidateKeyConfig verifies overrides may not shadow another list binding.
func TestValidateKeyConfig(t *testing.T) {
	cases := []struct {
		name    string
		cfg     KeyConfig
		wantErr string
	}{
		{name: "defaults", cfg: KeyConfig{}},
		{name: "distinct overrides", cfg: KeyConfig{Toggle: "t", Delete: "X", Copy: "c", Help: "h"}},
		{name: "uppercase navigation letter", cfg: KeyConfig{Toggle: "K"}},
		{name: "delete on default toggle alias", cfg: KeyConfig{Delete: "x"}, wantErr: `key "x" is bound to both keys.toggle and keys.delete`},
		{name: "toggle on move up", cfg: KeyConfig{Toggle: "k"}, wantErr: `key "k" is bound to both move up and keys.toggle`},
		{name: "help on quit", cfg: KeyConfig{Help: "q"}, wantErr: `key "q" is bound to both quit and keys.help`},
		{name: "copy on focus input", cfg: KeyConfig{Copy: "i"}, wantErr: `key "i" is bound to both focus input and keys.copy`},
		{name: "toggle on force quit", cfg: KeyConfig{Toggle: "ctrl+c"}, wantErr: `key "ctrl+c" is bound to both force quit and keys.toggle`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateKeyConfig(tc.cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateKeyConfig() error = %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("ValidateKeyConfig() error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}
