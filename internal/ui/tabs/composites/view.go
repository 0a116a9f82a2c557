package composites

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/styles"
)

const chartHeight = 8

// View renders the composites tab.
func (m *Model) View() string {
	snap := m.state.GetSnapshot()

	var content string
	switch {
	case snap == nil && m.state.IsFetching():
		return components.RenderLoading(m.spinner, components.LoadingLabel("Aligning composites", m.state.GetView()), m.pane.Width, m.pane.Height)
	case snap == nil && m.state.GetLastError() != nil:
		content = lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Composites"),
			fmt.Sprintf("%s %s", styles.ErrorTextStyle.Render("Error:"), m.state.GetLastError().Error()),
			"",
			styles.HelpStyle.Render("Press r to fetch again."),
		)
	case snap == nil || len(snap.Composites) == 0:
		content = lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Composites"),
			styles.HelpStyle.Render("No composites configured."),
		)
	default:
		sections := []string{m.renderHeader(snap)}
		for _, c := range snap.Composites {
			if c.OK() {
				sections = append(sections, m.renderComposite(snap, c))
			} else {
				sections = append(sections, m.renderFailed(c))
			}
		}
		content = lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	return m.pane.Render(content)
}

func (m *Model) renderHeader(snap *models.Snapshot) string {
	title := styles.TitleStyle.Render("Composites")

	var flags []string
	if snap.View.Align == models.AlignTrustFirst {
		flags = append(flags, styles.WarningTextStyle.Render("⚠ axis taken from first member"))
	}
	if !snap.View.ValidateAxes {
		flags = append(flags, styles.WarningTextStyle.Render("⚠ axis validation off"))
	}

	failed := 0
	for _, c := range snap.Composites {
		if !c.OK() {
			failed++
		}
	}

	subtitle := fmt.Sprintf("%d composites · %s alignment · %s",
		len(snap.Composites), snap.View.Align, series.UnitLabel(snap.View))
	if failed > 0 {
		subtitle += fmt.Sprintf(" · %d failed", failed)
	}

	rows := []string{title, styles.HelpStyle.Render(subtitle)}
	if len(flags) > 0 {
		rows = append(rows, strings.Join(flags, "  "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(rows, "")...)
}

func (m *Model) cardWidth() int {
	return styles.CardWidth(m.pane.Width, 40, 0)
}

func (m *Model) renderComposite(snap *models.Snapshot, c models.CompositeResult) string {
	named := c.Series.AsNamed()
	rows := []string{
		styles.CardTitleStyle.Render(c.Series.Name),
		styles.HelpStyle.Render(strings.Join(c.Series.Members, " + ")),
		"",
	}

	if named.Len() == 0 {
		rows = append(rows, styles.HelpStyle.Render("No common dates with finite values"))
	} else {
		chart := components.RenderSeriesChart([]models.NamedSeries{named}, components.ChartOptions{
			Width:   max(m.cardWidth()-16, 30),
			Height:  chartHeight,
			Caption: series.UnitLabel(snap.View),
		})
		rows = append(rows, chart, "")
	}

	rows = append(rows, m.renderStats(snap, c))

	if m.showShares {
		if last, ok := named.Last(); ok {
			shares := memberShares(snap, c.Series.Members, last.Date)
			format := func(v float64) string { return series.FormatWithUnit(v, snap.View) }
			rows = append(rows, "",
				styles.SubTitleStyle.Render("Shares on "+last.Date.Display()),
				components.RenderShareBars(shares, m.cardWidth()-6, format),
			)
		}
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderStats(snap *models.Snapshot, c models.CompositeResult) string {
	parts := []string{
		styles.RenderKeyValue("Aligned days", fmt.Sprintf("%d", c.AlignedDays)),
	}
	if dropped := c.Dropped(); dropped > 0 {
		parts = append(parts, styles.RenderKeyValue("Dropped (NaN)", styles.WarningTextStyle.Render(fmt.Sprintf("%d", dropped))))
	} else {
		parts = append(parts, styles.RenderKeyValue("Dropped (NaN)", "0"))
	}
	if last, ok := c.Series.AsNamed().Last(); ok {
		parts = append(parts, styles.RenderKeyValue("Latest",
			fmt.Sprintf("%s on %s", series.FormatWithUnit(last.Value, snap.View), last.Date.Display())))
	}
	return strings.Join(parts, "\n")
}

// memberShares looks up each member's value on date. Members without a value
// on that date get NaN and render as a zero bar.
func memberShares(snap *models.Snapshot, members []string, date models.CalendarDate) []components.Share {
	byName := make(map[string]int, len(snap.Points))
	for i, p := range snap.Points {
		byName[p.Name] = i
	}

	shares := make([]components.Share, 0, len(members))
	for _, name := range members {
		share := components.Share{Label: name, Value: math.NaN()}
		if i, ok := byName[name]; ok {
			share.Color = components.SeriesColor(i)
			if v, ok := snap.Points[i].ValueAt(date); ok {
				share.Value = v
			}
		}
		shares = append(shares, share)
	}
	return shares
}

func (m *Model) renderFailed(c models.CompositeResult) string {
	name := c.Series.Name
	if name == "" {
		name = "Composite"
	}

	rows := []string{
		styles.CardTitleStyle.Render(name),
	}
	if len(c.Series.Members) > 0 {
		rows = append(rows, styles.HelpStyle.Render(strings.Join(c.Series.Members, " + ")), "")
	}

	var mismatch *series.AxisMismatchError
	switch {
	case errors.As(c.Err, &mismatch):
		rows = append(rows,
			styles.WarningTextStyle.Render("⚠ Axis mismatch"),
			fmt.Sprintf("%s has no value on %s.", mismatch.Series, mismatch.Date.Display()),
			styles.HelpStyle.Render("Press m for strict alignment or v to skip validation."),
		)
	case errors.Is(c.Err, series.ErrTooFewSeries):
		rows = append(rows, styles.WarningTextStyle.Render("⚠ A composite needs at least two members"))
	default:
		rows = append(rows, styles.ErrorTextStyle.Render(c.Err.Error()))
	}

	return styles.MismatchCardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
