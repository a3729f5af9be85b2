// Package theme holds the color palette, styles, and icons for the UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds visual configuration for the application.
type Theme struct {
	Name         string
	UseNerdFonts bool
}

// DefaultTheme returns the default theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name:         "Tokyonight",
		UseNerdFonts: true,
	}
}

// FileIcon returns the icon for a file extension.
func (t *Theme) FileIcon(ext string) string {
	if !t.UseNerdFonts {
		return IconFile
	}
	if icon, ok := fileIcons[ext]; ok {
		return icon
	}
	return IconFile
}

// DirIcon returns the icon for a directory.
func (t *Theme) DirIcon(expanded bool) string {
	if expanded {
		return IconDirExpanded
	}
	return IconDirCollapsed
}

// Styles used by the tree panel and status bar.
var (
	RowCursor = lipgloss.NewStyle().
			Background(CursorBg).
			Foreground(Foreground).
			Bold(true)

	RowSelected = lipgloss.NewStyle().
			Background(HighlightBg).
			Foreground(AuroraGreen)

	RowSelectedCursor = lipgloss.NewStyle().
				Background(CursorBg).
				Foreground(AuroraGreen).
				Bold(true)

	RowDir = lipgloss.NewStyle().
		Foreground(GlacierBlue)

	RowFile = lipgloss.NewStyle().
		Foreground(Foreground)

	RowHidden = lipgloss.NewStyle().
			Foreground(Comment)

	StatusBar = lipgloss.NewStyle().
			Background(Storm).
			Foreground(Foreground)

	StatusAccent = lipgloss.NewStyle().
			Background(Storm).
			Foreground(SeafoamTeal)

	StatusWarn = lipgloss.NewStyle().
			Background(Storm).
			Foreground(EmberOrange)

	StatusMuted = lipgloss.NewStyle().
			Background(Storm).
			Foreground(Comment)

	PromptStyle = lipgloss.NewStyle().
			Foreground(IrisViolet)
)
