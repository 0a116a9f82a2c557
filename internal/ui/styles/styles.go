// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Flows are drawn in blues, problems with the data in amber and red.
var (
	Primary   = lipgloss.Color("39")
	Secondary = lipgloss.Color("73")
	Subtle    = lipgloss.Color("240")

	Success = lipgloss.Color("42")
	Warning = lipgloss.Color("214")
	Error   = lipgloss.Color("203")
	Info    = lipgloss.Color("75")

	Panel = lipgloss.Color("235")

	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("242")
)

var rounded = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

// Layout.
var (
	DocStyle = lipgloss.NewStyle().Margin(1, 2).Padding(0, 1)

	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)
	SubTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(Secondary).MarginBottom(1)
	CardTitleStyle = TitleStyle

	CardStyle = rounded.BorderForeground(Subtle).Padding(1, 2).MarginBottom(1)
	// MismatchCardStyle frames a composite whose axes could not be aligned.
	MismatchCardStyle = CardStyle.BorderForeground(Warning)

	ToastStyle     = rounded.BorderForeground(Primary).Padding(0, 1).MarginBottom(1)
	HelpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Background(Panel).
			Padding(1, 3)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(Subtle)
)

// Text.
var (
	HelpStyle        = lipgloss.NewStyle().Foreground(TextMuted)
	LabelStyle       = lipgloss.NewStyle().Width(18).Foreground(TextMuted)
	ValueStyle       = lipgloss.NewStyle().Foreground(TextPrimary)
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(Error)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(Success)
	WarningTextStyle = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(Info)
)

// RenderKeyValue renders an aligned "label: value" row.
func RenderKeyValue(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// CardWidth fits a card into the available width, keeping it within
// [minWidth, maxWidth]. A maxWidth of zero means no upper bound.
func CardWidth(available, minWidth, maxWidth int) int {
	w := max(available-6, minWidth)
	if maxWidth > 0 {
		w = min(w, maxWidth)
	}
	return w
}

// CenterBoth centers content in a width x height box.
func CenterBoth(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
