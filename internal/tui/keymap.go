package tui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit       key.Binding
	forceQuit  key.Binding
	submit     key.Binding
	focusList  key.Binding
	focusInput key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	toggleTask key.Binding
	deleteTask key.Binding
	copyTask   key.Binding
	toggleHelp key.Binding
	helpAlways key.Binding
	retry      key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		focusList:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "go to list")),
		focusInput: key.NewBinding(key.WithKeys("tab", "shift+tab", "esc", "i"), key.WithHelp("tab/i", "go to input")),
		moveUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		moveDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		toggleTask: key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle done")),
		deleteTask: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete task")),
		copyTask:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		helpAlways: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "toggle help")),
		retry:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	}
}

// applyConfig overrides configurable bindings; blank values keep the defaults.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.toggleTask, cfg.Toggle, "space", "toggle done")
	configureBinding(&k.deleteTask, cfg.Delete, "d", "delete task")
	configureBinding(&k.copyTask, cfg.Copy, "y", "copy text")
	configureBinding(&k.toggleHelp, cfg.Help, "?", "toggle help")
}

// ValidateKeyConfig reports an error when a configured key would share a key
// press with another binding active while the list has focus. The earlier
// binding in dispatch order would otherwise swallow it silently.
func ValidateKeyConfig(cfg KeyConfig) error {
	k := newKeyMap()
	k.applyConfig(cfg)
	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"force quit", k.forceQuit},
		{"help", k.helpAlways},
		{"quit", k.quit},
		{"keys.help", k.toggleHelp},
		{"focus input", k.focusInput},
		{"move up", k.moveUp},
		{"move down", k.moveDown},
		{"keys.toggle", k.toggleTask},
		{"keys.delete", k.deleteTask},
		{"keys.copy", k.copyTask},
	}
	owner := map[string]string{}
	for _, b := range bindings {
		for _, press := range b.binding.Keys() {
			if other, ok := owner[press]; ok && other != b.name {
				return fmt.Errorf("key %q is bound to both %s and %s", press, other, b.name)
			}
			owner[press] = b.name
		}
	}
	return nil
}

// configureBinding replaces binding keys when raw is set.
func configureBinding(binding *key.Binding, raw, fallback, desc string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	keys, help := parseBindingKeys(raw, fallback)
	binding.SetKeys(keys...)
	binding.SetHelp(help, desc)
}

// parseBindingKeys maps one configured key into matcher keys and help text.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	value := strings.TrimSpace(raw)
	if raw == " " {
		value = "space"
	}
	if value == "" {
		value = fallback
	}
	if strings.EqualFold(value, "space") {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if unicode.IsUpper(r) {
			return []string{value, "shift+" + strings.ToLower(value)}, value
		}
		return []string{value}, value
	}
	return []string{strings.ToLower(value)}, value
}

// inputHelp lists bindings while the text input has focus.
type inputHelp struct{ keyMap }

// ShortHelp handles short help.
func (h inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.submit, h.focusList, h.helpAlways, h.forceQuit}
}

// FullHelp handles full help.
func (h inputHelp) FullHelp() [][]key.Binding {
	return h.keyMap.FullHelp()
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggleTask, k.deleteTask, k.copyTask, k.focusInput, k.toggleHelp, k.quit}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.focusList, k.focusInput},
		{k.moveUp, k.moveDown, k.toggleTask, k.deleteTask, k.copyTask},
		{k.toggleHelp, k.helpAlways, k.quit, k.forceQuit},
	}
}
