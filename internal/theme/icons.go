package theme

// Fallback icons when Nerd Fonts are disabled.
const (
	IconFile         = "·"
	IconDirExpanded  = "▾"
	IconDirCollapsed = "▸"
)

// fileIcons maps extensions to Nerd Font glyphs. Unknown extensions
// fall back to IconFile.
var fileIcons = map[string]string{
	".go":   "",
	".mod":  "",
	".sum":  "",
	".md":   "",
	".json": "",
	".yaml": "",
	".yml":  "",
	".toml": "",
	".sh":   "",
	".py":   "",
	".js":   "",
	".ts":   "",
	".rs":   "",
	".c":    "",
	".h":    "",
	".txt":  "",
	".log":  "",
	".zip":  "",
	".png":  "",
	".jpg":  "",
	".svg":  "",
}
