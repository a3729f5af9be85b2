package theme

import "github.com/charmbracelet/lipgloss"

// Accent colors
var (
	GlacierBlue = lipgloss.Color("#7AA2F7") // Primary accent / directories
	SeafoamTeal = lipgloss.Color("#73DACA") // Secondary accent
	AuroraGreen = lipgloss.Color("#9ECE6A") // Success / selected marker
	EmberOrange = lipgloss.Color("#FF9E64") // Warnings / pending work
	CoralRed    = lipgloss.Color("#F7768E") // Errors
	IrisViolet  = lipgloss.Color("#BB9AF7") // Pattern matches / special
)

// Backgrounds
var (
	Night     = lipgloss.Color("#1A1B26") // Primary background
	Storm     = lipgloss.Color("#24283B") // Panel background
	HighlightBg = lipgloss.Color("#2F3450") // Selected row background
	CursorBg    = lipgloss.Color("#3B4261") // Cursor row background
)

// Text
var (
	Foreground = lipgloss.Color("#C0CAF5") // Primary text
	Comment    = lipgloss.Color("#565F89") // Muted text
	Dim        = lipgloss.Color("#3B4261") // Dimmed / disabled
)
