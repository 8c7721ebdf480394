package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Amber).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Match highlight styles for suggestion rows
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(Amber).
					Background(SlateLight).
					Bold(true)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Amber)
)

// SpinnerFrames are the animation frames for the loading indicator
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Amber)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
