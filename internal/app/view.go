package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/styles"
)

// toastTop is the first screen row used by toasts, just below the status bar.
const toastTop = 3

// Styles holds the styles of the application chrome. Tab content is styled by
// the tabs themselves.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	StatusBar   lipgloss.Style
	Content     lipgloss.Style
	Toast       lipgloss.Style

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Warning   lipgloss.Style

	notification map[NotificationType]lipgloss.Style
}

// DefaultStyles derives the chrome styles from the shared palette.
func DefaultStyles() Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return Styles{
		TabBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(styles.Subtle),
		ActiveTab:   fg(styles.Primary).Bold(true).Underline(true).Padding(0, 2),
		InactiveTab: fg(styles.TextSecondary).Padding(0, 2),
		StatusBar:   lipgloss.NewStyle().Padding(0, 2),
		Content:     styles.DocStyle,
		Toast:       styles.ToastStyle,

		Title:     styles.TitleStyle,
		Subtle:    fg(styles.TextMuted),
		Highlight: fg(styles.Secondary).Bold(true),
		Warning:   styles.WarningTextStyle,

		notification: map[NotificationType]lipgloss.Style{
			NotificationSuccess: styles.SuccessTextStyle,
			NotificationError:   styles.ErrorTextStyle.Bold(true),
			NotificationWarning: styles.WarningTextStyle,
			NotificationInfo:    styles.InfoTextStyle,
			NotificationLoading: styles.InfoTextStyle,
		},
	}
}

var notificationGlyphs = map[NotificationType]string{
	NotificationSuccess: "✓",
	NotificationError:   "✗",
	NotificationWarning: "⚠",
	NotificationInfo:    "ℹ",
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar() + "\n")
		b.WriteString(m.renderStatusBar() + "\n")
	}

	switch tab := m.currentTab(); {
	case !m.ready:
		b.WriteString(m.styles.Content.Render(m.spinner.View() + " Loading..."))
		return b.String()
	case tab != nil:
		b.WriteString(tab.View())
	default:
		b.WriteString(m.renderPlaceholder())
	}

	screen := b.String()

	if m.showHelp {
		help := m.renderHelp()
		x := max((m.width-lipgloss.Width(help))/2, 0)
		y := max((m.height-lipgloss.Height(help))/2, 0)
		screen = placeOverlay(screen, help, x, y)
	}

	if toasts := m.renderNotifications(); len(toasts) > 0 {
		stack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
		x := max(m.width-lipgloss.Width(stack)-2, 0)
		screen = placeOverlay(screen, stack, x, toastTop)
	}

	return screen
}

func (m *Model) currentTab() Tab {
	if int(m.activeTab) < len(m.tabs) {
		return m.tabs[m.activeTab]
	}
	return nil
}

// placeOverlay draws fg over base with its top-left corner at column x, row y.
// Rows beyond the end of base are dropped.
func placeOverlay(base, fg string, x, y int) string {
	rows := strings.Split(base, "\n")
	fgWidth := lipgloss.Width(fg)

	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row >= len(rows) {
			break
		}
		under := rows[row]
		left := ansi.Truncate(under, x, "")
		if gap := x - lipgloss.Width(left); gap > 0 {
			left += strings.Repeat(" ", gap)
		}
		rows[row] = left + line + ansi.TruncateLeft(under, x+fgWidth, "")
	}

	return strings.Join(rows, "\n")
}

func (m *Model) renderNavbar() string {
	names := []TabID{TabPoints, TabComposites, TabInfo}
	tabs := make([]string, 0, len(names))
	for i, id := range names {
		label := fmt.Sprintf("%d %s", i+1, id)
		if id == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(label))
		}
	}

	return m.styles.TabBar.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar shows the active toggles. Non-default alignment settings are
// highlighted because composites may then rest on an unchecked axis.
func (m *Model) renderStatusBar() string {
	view := m.state.GetView()

	parts := []string{
		m.styles.Highlight.Render(view.Indicator.String()),
		m.styles.Highlight.Render(view.Unit.String()),
		m.styles.Highlight.Render(view.Rate.String()),
	}

	align := "align " + view.Align.String()
	if view.Align == models.AlignTrustFirst {
		parts = append(parts, m.styles.Warning.Render("⚠ "+align))
	} else {
		parts = append(parts, m.styles.Subtle.Render(align))
	}

	if view.ValidateAxes {
		parts = append(parts, m.styles.Subtle.Render("validation on"))
	} else {
		parts = append(parts, m.styles.Warning.Render("validation off"))
	}

	parts = append(parts, m.styles.Subtle.Render("export "+m.state.GetExportFormat().String()))

	return m.styles.StatusBar.Render(strings.Join(parts, m.styles.Subtle.Render(" · ")))
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	toasts := make([]string, 0, len(notifications))

	for _, n := range notifications {
		glyph := notificationGlyphs[n.Type]
		if n.Type == NotificationLoading {
			glyph = m.spinner.View()
		}
		text := m.styles.notification[n.Type].Render(glyph + " " + n.Message)
		toasts = append(toasts, m.styles.Toast.Render(text))
	}

	return toasts
}

// renderHelp lists the global sections followed by the active tab's keys.
func (m *Model) renderHelp() string {
	sections := m.keymap.sections()
	if tab := m.currentTab(); tab != nil {
		if local := tab.ShortHelp(); len(local) > 0 {
			sections = append(sections, helpSection{m.activeTab.String() + " tab", local})
		}
	}

	keyCol := lipgloss.NewStyle().Width(14)
	lines := []string{m.styles.Title.Render("Keyboard Shortcuts")}
	for _, s := range sections {
		lines = append(lines, m.styles.Highlight.Render(s.title))
		for _, b := range s.bindings {
			h := b.Help()
			lines = append(lines, "  "+keyCol.Render(h.Key)+h.Desc)
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.styles.Subtle.Render("Press ? or esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	return m.styles.Content.Render(
		m.styles.Title.Render(m.activeTab.String()) + "\n" +
			m.styles.Subtle.Render("No view registered for this tab."),
	)
}
