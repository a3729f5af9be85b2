package filetree

import (
	"github.com/benju66/ExplorerPro-sub010/internal/tree"
	"github.com/charmbracelet/bubbles/key"
)

// Messages emitted by the file tree.
type (
	// LoadedMsg is sent when a directory's children have been read.
	LoadedMsg struct {
		Path     string
		Children []*tree.Node
		Err      error
	}

	// OpenMsg is sent when the user activates a file.
	OpenMsg struct {
		Path string
	}

	// SelChunkMsg drives one background selection chunk. Re-queued
	// until the generation's queue drains or a newer request supersedes
	// it; the message round-trip is the cooperative yield that lets
	// input and rendering interleave.
	SelChunkMsg struct {
		Gen uint64
	}
)

// KeyMap defines the key bindings for the file tree.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Toggle      key.Binding
	RangeExtend key.Binding
	SelectAll   key.Binding
	Pattern     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Left:     key.NewBinding(key.WithKeys("left", "h")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Enter:    key.NewBinding(key.WithKeys("enter")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		Home:     key.NewBinding(key.WithKeys("home", "g")),
		End:      key.NewBinding(key.WithKeys("end", "G")),

		Toggle:      key.NewBinding(key.WithKeys(" ")),
		RangeExtend: key.NewBinding(key.WithKeys("V")),
		SelectAll:   key.NewBinding(key.WithKeys("a")),
		Pattern:     key.NewBinding(key.WithKeys("%")),
	}
}
