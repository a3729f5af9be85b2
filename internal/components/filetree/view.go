package filetree

import (
	"strconv"
	"strings"

	"github.com/benju66/ExplorerPro-sub010/internal/theme"
	"github.com/benju66/ExplorerPro-sub010/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

// View renders the visible window. Each render pass rebinds the pool
// rows to whichever nodes currently occupy the viewport and refreshes
// their cache entries — the layout pass that self-corrects any
// conservative "not visible" classification from the engine.
func (m Model) View() string {
	w, _ := m.Size()
	if w == 0 || m.env.height == 0 && !m.searching && !m.patterning {
		return ""
	}

	lines := make([]string, 0, m.env.height)
	line := 0
	for i := m.env.top; i < len(m.visible) && line < m.env.height; i++ {
		node := m.visible[i]
		label := m.renderLabel(node)

		row := m.env.pool.Bind(line, node.Path, i, label, m.svc.IsSelected(node.Path))
		if row != nil {
			m.cache.Set(node.Path, row)
		}

		lines = append(lines, m.styleRow(node, label, row != nil && row.Selected(), i == m.cursor, w))
		line++
	}
	m.env.pool.ReleaseFrom(line)

	for len(lines) < m.env.height {
		lines = append(lines, "")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	if bar := m.renderBar(w); bar != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, bar)
	}
	return content
}

// renderLabel builds the unstyled row text: indent, icon, name.
func (m Model) renderLabel(node *tree.Node) string {
	var b strings.Builder
	for i := 0; i < node.Depth; i++ {
		b.WriteString("  ")
	}

	if node.IsDir {
		b.WriteString(m.theme.DirIcon(node.Expanded))
	} else {
		b.WriteString(m.theme.FileIcon(node.Extension()))
	}
	b.WriteString(" ")
	b.WriteString(node.Name)
	if node.IsDir {
		b.WriteString("/")
	}
	if m.loading[node.Path] {
		b.WriteString(" …")
	}
	return b.String()
}

// styleRow applies selection and cursor styling to a bound row's label.
func (m Model) styleRow(node *tree.Node, label string, selected, cursor bool, maxWidth int) string {
	if lipgloss.Width(label) > maxWidth && maxWidth > 1 {
		label = truncate(label, maxWidth-1) + "…"
	}

	switch {
	case cursor && selected:
		return theme.RowSelectedCursor.Width(maxWidth).Render(label)
	case cursor:
		return theme.RowCursor.Width(maxWidth).Render(label)
	case selected:
		return theme.RowSelected.Width(maxWidth).Render(label)
	case node.IsDir:
		return theme.RowDir.Render(label)
	case node.IsHidden():
		return theme.RowHidden.Render(label)
	default:
		return theme.RowFile.Render(label)
	}
}

// renderBar renders the search or pattern input line, if active.
func (m Model) renderBar(maxWidth int) string {
	switch {
	case m.searching:
		return "/" + m.searchInput.View()

	case m.patterning:
		flags := ""
		if m.patternRecursive {
			flags += " [recursive]"
		}
		if m.patternAdditive {
			flags += " [add]"
		}
		return theme.PromptStyle.Render("%") + m.patternInput.View() +
			theme.StatusMuted.Render(flags)

	case m.searchQuery != "":
		bar := theme.PromptStyle.Render("/ " + m.searchQuery)
		if m.matchCount > 0 {
			bar += theme.StatusMuted.Render(" (" + strconv.Itoa(m.matchCount) + " matches)")
		}
		return bar
	}
	return ""
}

// truncate cuts a string to at most width cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > width {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String()
}
