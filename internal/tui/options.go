package tui

import "github.com/atotto/clipboard"

// UIText holds the user-facing strings of the board.
type UIText struct {
	Title       string
	Subtitle    string
	Placeholder string
	EmptyTitle  string
	EmptyHint   string
}

// KeyConfig holds configurable key overrides; blank fields keep defaults.
type KeyConfig struct {
	Toggle string
	Delete string
	Copy   string
	Help   string
}

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter func(string) error

type Option func(*Model)

func DefaultUIText() UIText {
	return UIText{
		Title:       "Task List",
		Subtitle:    "Organize your day",
		Placeholder: "Type a new task...",
		EmptyTitle:  "No tasks yet",
		EmptyHint:   "Add your first task above!",
	}
}

// WithUIText overrides board strings; blank fields keep defaults.
func WithUIText(text UIText) Option {
	return func(m *Model) {
		defaults := DefaultUIText()
		m.text = UIText{
			Title:       firstNonBlank(text.Title, defaults.Title),
			Subtitle:    firstNonBlank(text.Subtitle, defaults.Subtitle),
			Placeholder: firstNonBlank(text.Placeholder, defaults.Placeholder),
			EmptyTitle:  firstNonBlank(text.EmptyTitle, defaults.EmptyTitle),
			EmptyHint:   firstNonBlank(text.EmptyHint, defaults.EmptyHint),
		}
		m.input.Placeholder = m.text.Placeholder
	}
}

func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

func WithClipboardWriter(write ClipboardWriter) Option {
	return func(m *Model) {
		if write != nil {
			m.writeClipboard = write
		}
	}
}

// systemClipboard writes through the OS clipboard utilities.
func systemClipboard(text string) error {
	return clipboard.WriteAll(text)
}
