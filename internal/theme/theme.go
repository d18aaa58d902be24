package theme

import (
	"github.com/charmbracelet/lipgloss"

	"notifeed/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// accent is the highlight color used for headers, the selection cursor,
// and unread badges. It defaults to blue and can be overridden by the
// host theme or config.
var accent lipgloss.TerminalColor = ColorBlue

// SetAccent overrides the accent color with a hex value. An empty value
// keeps the current accent.
func SetAccent(hex string) {
	if hex == "" {
		return
	}
	accent = lipgloss.Color(hex)
}

// HeaderStyle is used for the application title bar.
func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(accent).
		Padding(0, 1)
}

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// GroupTitleStyle renders time-group headers (Today, Yesterday, ...).
var GroupTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGray).
	MarginTop(1).
	PaddingLeft(1)

// ItemStyle is the base style for feed entries.
var ItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the entry under the cursor.
func SelectedItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(accent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(accent)
}

// UnreadBadgeStyle marks entries not yet read.
func UnreadBadgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(accent)
}

// TagStyle renders the short detail tags under an entry.
var TagStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Background(ColorSubtle).
	Padding(0, 1)

// TimeStyle renders relative timestamps.
var TimeStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// PanelStyle wraps overlay panels such as the help view.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ErrorStyle renders the transient error notice in the status bar.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// TypeIcon returns the glyph shown for a notification type. Unknown
// types get the generic bullet.
func TypeIcon(t model.NotificationType) string {
	switch t {
	case model.TypeFileUpload:
		return "↑"
	case model.TypeRecordCreate:
		return "+"
	case model.TypeRecordUpdate:
		return "✎"
	case model.TypeUserAction:
		return "@"
	default:
		return "•"
	}
}

// TypeStyle returns a color-coded style for a notification type icon.
func TypeStyle(t model.NotificationType) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch t {
	case model.TypeFileUpload:
		return base.Foreground(ColorGreen)
	case model.TypeRecordCreate:
		return base.Foreground(ColorBlue)
	case model.TypeRecordUpdate:
		return base.Foreground(ColorYellow)
	case model.TypeUserAction:
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGray)
	}
}
