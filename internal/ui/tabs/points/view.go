package points

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/styles"
)

const (
	combinedChartHeight = 12
	splitChartHeight    = 6
	sparkWidth          = 20
)

// View renders the points tab.
func (m *Model) View() string {
	snap := m.state.GetSnapshot()

	switch {
	case snap == nil && m.state.IsFetching():
		return components.RenderLoading(m.spinner, components.LoadingLabel("Fetching gas flows", m.state.GetView()), m.pane.Width, m.pane.Height)
	case snap == nil && m.state.GetLastError() != nil:
		return m.renderError(m.state.GetLastError())
	case !snap.HasData():
		return m.renderEmpty()
	}

	sections := []string{m.renderHeader(snap)}
	if m.isSplit {
		for i, s := range snap.Points {
			sections = append(sections, m.renderPointCard(snap, i, s))
		}
	} else {
		sections = append(sections, m.renderCombinedCard(snap))
	}

	return m.pane.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderError(err error) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Interconnection points"),
		fmt.Sprintf("%s %s", styles.ErrorTextStyle.Render("Error:"), err.Error()),
		"",
		styles.HelpStyle.Render("Press r to fetch again."),
	)
	return m.pane.Frame(content)
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Interconnection points"),
		styles.HelpStyle.Render("No observations returned for the configured points."),
		styles.HelpStyle.Render("Press r to fetch again."),
	)
	return m.pane.Frame(content)
}

func (m *Model) renderHeader(snap *models.Snapshot) string {
	title := styles.TitleStyle.Render("Interconnection points")

	subtitle := fmt.Sprintf("%s · %s – %s · %d observations",
		series.UnitLabel(snap.View), snap.From.Display(), snap.To.Display(), snap.TotalPoints())
	if m.state.IsFetching() {
		subtitle += " · " + styles.WarningTextStyle.Render("updating")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) chartWidth() int {
	return max(styles.CardWidth(m.pane.Width, 40, 0)-16, 30)
}

func (m *Model) renderCombinedCard(snap *models.Snapshot) string {
	rows := []string{styles.CardTitleStyle.Render(snap.View.Indicator.String())}

	chart := components.RenderSeriesChart(snap.Points, components.ChartOptions{
		Width:   m.chartWidth(),
		Height:  combinedChartHeight,
		Caption: series.UnitLabel(snap.View),
	})
	rows = append(rows, indent(chart), "")
	rows = append(rows, "  "+components.RenderLegend(components.LegendFor(snap.Points)), "")
	rows = append(rows, indent(components.RenderLatestTable(snap.Points, snap.View, sparkWidth)))

	return styles.CardStyle.Width(styles.CardWidth(m.pane.Width, 40, 0)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderPointCard(snap *models.Snapshot, i int, s models.NamedSeries) string {
	marker := lipgloss.NewStyle().Foreground(components.SeriesColor(i)).Render("■")
	rows := []string{fmt.Sprintf("%s %s", marker, styles.CardTitleStyle.Render(s.Name))}

	if s.Len() == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No data in range"))
	} else {
		chart := components.RenderSeriesChart(
			// Pad with empty siblings so the line keeps its palette color.
			append(make([]models.NamedSeries, i), s),
			components.ChartOptions{
				Width:   m.chartWidth(),
				Height:  splitChartHeight,
				Caption: series.UnitLabel(snap.View),
			})
		rows = append(rows, indent(chart))

		if last, ok := s.Last(); ok {
			rows = append(rows, "", fmt.Sprintf("  Latest %s: %s",
				last.Date.Display(),
				styles.InfoTextStyle.Render(series.FormatWithUnit(last.Value, snap.View))))
		}
	}

	return styles.CardStyle.Width(styles.CardWidth(m.pane.Width, 40, 0)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
