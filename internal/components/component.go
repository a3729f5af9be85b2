// Package components defines the shared contract for UI panels.
package components

import tea "github.com/charmbracelet/bubbletea"

// Component is the interface every panel implements: a tea.Model with
// focus management and sizing.
type Component interface {
	tea.Model

	Focus() Component
	Blur() Component
	Focused() bool

	SetSize(width, height int) Component
	Size() (width, height int)
}

// Base provides default focus and size bookkeeping; embed it in panel
// models.
type Base struct {
	focused bool
	width   int
	height  int
}

// NewBase creates a Base with the given dimensions.
func NewBase(width, height int) Base {
	return Base{width: width, height: height}
}

// Focus marks the component focused.
func (b *Base) Focus() { b.focused = true }

// Blur removes focus.
func (b *Base) Blur() { b.focused = false }

// Focused reports the focus state.
func (b Base) Focused() bool { return b.focused }

// SetSize updates the stored dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Size returns the stored dimensions.
func (b Base) Size() (width, height int) {
	return b.width, b.height
}
