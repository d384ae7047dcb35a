package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"faceless-studio/internal/app"
)

type Theme struct {
	Name string

	// Colors
	TextPrimary lipgloss.Color
	TextMuted   lipgloss.Color
	TextFaint   lipgloss.Color

	Accent   lipgloss.Color
	Success  lipgloss.Color
	Warn     lipgloss.Color
	Error    lipgloss.Color
	Border   lipgloss.Color
	BorderHi lipgloss.Color

	// Styles
	TopBar      lipgloss.Style
	TopBarTitle lipgloss.Style
	TopBarBadge lipgloss.Style
	TopBarMeta  lipgloss.Style

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style
	PaneTitleF  lipgloss.Style
	Footer      lipgloss.Style
	InputBox    lipgloss.Style
	InputBoxF   lipgloss.Style
	Spinner     lipgloss.Style

	StageDone    lipgloss.Style
	StageActive  lipgloss.Style
	StagePending lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabLocked   lipgloss.Style

	BannerError   lipgloss.Style
	BannerSuccess lipgloss.Style
	BannerInfo    lipgloss.Style
}

// NewTheme maps the persisted preference token to a palette. STUDIO_NO_COLOR=1
// strips color for dumb terminals and transcript capture.
func NewTheme(name string) Theme {
	if os.Getenv("STUDIO_NO_COLOR") == "1" {
		return newNoColorTheme()
	}
	switch name {
	case app.ThemeLight:
		return newLightTheme()
	default:
		return newDarkTheme()
	}
}

func newDarkTheme() Theme {
	t := Theme{
		Name:        app.ThemeDark,
		TextPrimary: lipgloss.Color("#f2f2f2"),
		TextMuted:   lipgloss.Color("#c7c7c7"),
		TextFaint:   lipgloss.Color("#8d8d8d"),

		Accent:   lipgloss.Color("#7aa2ff"),
		Success:  lipgloss.Color("#46d1b7"),
		Warn:     lipgloss.Color("#f4b27d"),
		Error:    lipgloss.Color("#ff7a7a"),
		Border:   lipgloss.Color("#3a3a3a"),
		BorderHi: lipgloss.Color("#7aa2ff"),
	}
	return t.buildStyles()
}

func newLightTheme() Theme {
	t := Theme{
		Name:        app.ThemeLight,
		TextPrimary: lipgloss.Color("#1d2433"),
		TextMuted:   lipgloss.Color("#4a5568"),
		TextFaint:   lipgloss.Color("#718096"),

		Accent:   lipgloss.Color("#1f6feb"),
		Success:  lipgloss.Color("#0f766e"),
		Warn:     lipgloss.Color("#b45309"),
		Error:    lipgloss.Color("#b42318"),
		Border:   lipgloss.Color("#cbd5e0"),
		BorderHi: lipgloss.Color("#1f6feb"),
	}
	return t.buildStyles()
}

func newNoColorTheme() Theme {
	t := Theme{
		Name:        "no-color",
		TextPrimary: lipgloss.Color("#ffffff"),
		TextMuted:   lipgloss.Color("#dddddd"),
		TextFaint:   lipgloss.Color("#bbbbbb"),
		Accent:      lipgloss.Color("#ffffff"),
		Success:     lipgloss.Color("#ffffff"),
		Warn:        lipgloss.Color("#ffffff"),
		Error:       lipgloss.Color("#ffffff"),
		Border:      lipgloss.Color("#777777"),
		BorderHi:    lipgloss.Color("#ffffff"),
	}
	return t.buildStyles()
}

func (t Theme) buildStyles() Theme {
	t.TopBar = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.TopBarTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.TopBarBadge = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.TopBarMeta = lipgloss.NewStyle().Foreground(t.TextMuted)

	t.Pane = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.PaneFocused = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)
	t.PaneTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextMuted)
	t.PaneTitleF = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.InputBox = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.InputBoxF = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)

	t.StageDone = lipgloss.NewStyle().Foreground(t.Success)
	t.StageActive = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.StagePending = lipgloss.NewStyle().Foreground(t.TextFaint)

	t.TabActive = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary).Underline(true)
	t.TabInactive = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.TabLocked = lipgloss.NewStyle().Foreground(t.TextFaint).Faint(true)

	t.BannerError = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	t.BannerSuccess = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	t.BannerInfo = lipgloss.NewStyle().Foreground(t.TextMuted)
	return t
}
