// Package statusbar renders the one-line footer: selection count,
// pending background work, and engine diagnostics. It reads everything
// from the selection service on each render, so the tier-completion
// callbacks only need to trigger a redraw.
package statusbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/benju66/ExplorerPro-sub010/internal/selection"
	"github.com/benju66/ExplorerPro-sub010/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Model is the status bar component.
type Model struct {
	width   int
	svc     *selection.Service
	message string
}

// New creates a status bar reading from the given selection service.
func New(svc *selection.Service) Model {
	return Model{svc: svc}
}

// SetWidth updates the bar width.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// SetMessage shows a transient message on the left side.
func (m Model) SetMessage(text string) Model {
	m.message = text
	return m
}

// View renders the bar.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	var left string
	if m.message != "" {
		left = theme.StatusBar.Render(" " + m.message)
	} else {
		left = theme.StatusAccent.Render(fmt.Sprintf(" %d selected", m.svc.Count()))
		if pending := m.svc.Pending(); pending > 0 {
			left += theme.StatusWarn.Render(fmt.Sprintf(" (%d queued)", pending))
		}
	}

	snap := m.svc.GetMetricsSnapshot()
	right := theme.StatusMuted.Render(fmt.Sprintf(
		"cache %d · hit %.0f%% · last %s ",
		snap.CacheSize,
		snap.HitRatio()*100,
		snap.LastUpdateDuration.Round(10*time.Microsecond),
	))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return theme.StatusBar.Width(m.width).Render(left)
	}
	return left + theme.StatusBar.Render(strings.Repeat(" ", gap)) + right
}
