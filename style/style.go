package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors: initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	CellBg  color.Color = lipgloss.Color("#111827")
	PanelBg color.Color = lipgloss.Color("#1F2937")

	// Gradient endpoints: default to dark theme violet→cyan
	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Styles: rebuilt when the theme changes via rebuildStyles().
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style
	Hint      lipgloss.Style

	// Grid cells
	CellBorder         lipgloss.Style
	CellBorderFocus    lipgloss.Style
	CellBorderExpanded lipgloss.Style
	CellTitle          lipgloss.Style
	CellCaption        lipgloss.Style

	// Preview panel
	PanelBorder lipgloss.Style
	PanelTitle  lipgloss.Style
	PanelClose  lipgloss.Style
	PanelLink   lipgloss.Style

	// Header
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// Help
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Scrollbar
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style

	SpinnerStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	CellBg = t.CellBg
	PanelBg = t.PanelBg
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

// MarkdownStyle names the glamour style that suits the current theme.
func MarkdownStyle() string {
	if IsDark() {
		return "dark"
	}
	return "light"
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Hint = lipgloss.NewStyle().Foreground(Dim)

	CellBorder = lipgloss.NewStyle().Foreground(Border)
	CellBorderFocus = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	CellBorderExpanded = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	CellTitle = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	CellCaption = lipgloss.NewStyle().Foreground(Muted)

	PanelBorder = lipgloss.NewStyle().Foreground(Primary)
	PanelTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	PanelClose = lipgloss.NewStyle().Foreground(Error).Bold(true)
	PanelLink = lipgloss.NewStyle().Foreground(Secondary).Underline(true)

	HeaderTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HeaderMeta = lipgloss.NewStyle().Foreground(Muted)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	StatusKey = lipgloss.NewStyle().Foreground(Dim)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)

	SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)
}
