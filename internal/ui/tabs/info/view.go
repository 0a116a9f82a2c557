package info

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderCatalogCard(),
		m.renderStatusCard(),
		m.renderAboutCard(),
	}

	return m.pane.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, catalog and cache status")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) card(title string, rows ...string) string {
	body := append([]string{styles.CardTitleStyle.Render(title)}, rows...)
	return styles.CardStyle.Width(styles.CardWidth(m.pane.Width, 50, 90)).Render(
		lipgloss.JoinVertical(lipgloss.Left, body...),
	)
}

func (m *Model) renderConfigCard() string {
	if m.services == nil || m.services.Config() == nil {
		return m.card("Configuration", styles.HelpStyle.Render("Configuration not loaded"))
	}
	cfg := m.services.Config()

	catalogPath := m.services.CatalogPath()
	if catalogPath == "" {
		catalogPath = "embedded default"
	}
	schedule := cfg.RefreshSchedule
	if schedule == "" {
		schedule = "manual"
	}
	notify := "off"
	if cfg.Notify {
		notify = "on"
	}

	return m.card("Configuration",
		styles.RenderKeyValue("Feed", cfg.BaseURL),
		styles.RenderKeyValue("Catalog", catalogPath),
		styles.RenderKeyValue("From", cfg.FromDate.Display()),
		styles.RenderKeyValue("Timezone", cfg.Timezone),
		styles.RenderKeyValue("HTTP timeout", cfg.HTTPTimeout.String()),
		styles.RenderKeyValue("Cache TTL", cfg.CacheTTL.String()),
		styles.RenderKeyValue("Refresh", schedule),
		styles.RenderKeyValue("Notifications", notify),
		styles.RenderKeyValue("Export dir", cfg.ExportDir),
		styles.RenderKeyValue("Log file", cfg.LogFile),
	)
}

func (m *Model) renderCatalogCard() string {
	if m.services == nil {
		return m.card("Catalog", styles.HelpStyle.Render("Catalog not loaded"))
	}
	cat := m.services.Catalog()

	rows := []string{styles.SubTitleStyle.Render(fmt.Sprintf("Points (%d)", len(cat.Points)))}
	for _, p := range cat.Points {
		line := fmt.Sprintf("%s  %s", p.Label(), styles.HelpStyle.Render(p.ID))
		if p.Country != "" {
			line += styles.HelpStyle.Render(" · " + p.Country)
		}
		rows = append(rows, line)
	}

	rows = append(rows, "", styles.SubTitleStyle.Render(fmt.Sprintf("Composites (%d)", len(cat.Composites))))
	for _, c := range cat.Composites {
		labels := make([]string, len(c.Members))
		for i, id := range c.Members {
			labels[i] = cat.Label(id)
		}
		rows = append(rows, fmt.Sprintf("%s  %s", c.Name, styles.HelpStyle.Render("= "+strings.Join(labels, " + "))))
	}

	return m.card("Catalog", rows...)
}

func (m *Model) renderStatusCard() string {
	var rows []string

	if stats := m.state.GetStats(); stats != nil {
		lookups := stats.Cache.Hits + stats.Cache.Misses
		hitRate := "–"
		if lookups > 0 {
			hitRate = fmt.Sprintf("%.0f%%", float64(stats.Cache.Hits)/float64(lookups)*100)
		}
		rows = append(rows,
			styles.RenderKeyValue("Cached series", humanize.Comma(int64(stats.Cache.Entries))),
			styles.RenderKeyValue("Cache hits", fmt.Sprintf("%s (%s)", humanize.Comma(stats.Cache.Hits), hitRate)),
			styles.RenderKeyValue("Cache misses", humanize.Comma(stats.Cache.Misses)),
			styles.RenderKeyValue("Shared fetches", humanize.Comma(stats.Cache.Shared)),
			styles.RenderKeyValue("Last fetch", relative(stats.LastFetch)),
			styles.RenderKeyValue("Next refresh", relative(stats.NextRefresh)),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("No statistics yet"))
	}

	if snap := m.state.GetSnapshot(); snap != nil {
		rows = append(rows,
			styles.RenderKeyValue("Observations", humanize.Comma(int64(snap.TotalPoints()))),
			styles.RenderKeyValue("Batch", snap.BatchID),
		)
	}

	lastExport := m.state.GetLastExport()
	if lastExport == "" {
		lastExport = "none"
	}
	rows = append(rows,
		styles.RenderKeyValue("Export format", m.state.GetExportFormat().String()),
		styles.RenderKeyValue("Last export", lastExport),
	)

	return m.card("Status", rows...)
}

func relative(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return fmt.Sprintf("%s (%s)", humanize.Time(t), t.Format("15:04:05"))
}

func (m *Model) renderAboutCard() string {
	return m.card("About",
		styles.RenderKeyValue("Version", version.GetVersion()),
		styles.RenderKeyValue("Commit", version.GetCommit()),
		styles.RenderKeyValue("Build date", version.GetDate()),
		styles.RenderKeyValue("Go version", runtime.Version()),
		styles.RenderKeyValue("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	)
}
