package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/styles"
)

var spinnerLabelStyle = lipgloss.NewStyle().Foreground(styles.TextSecondary)

// NewSpinner returns the dot spinner shown while flows load.
func NewSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
}

// LoadingLabel describes the pending computation for view, for example
// "Fetching gas flows: Physical Flow in GWh/d".
func LoadingLabel(activity string, view models.ViewConfig) string {
	label := fmt.Sprintf("%s: %s in %s", activity, view.Indicator, series.UnitLabel(view))
	if view.Align == models.AlignTrustFirst {
		label += " (trust first)"
	}
	return label
}

// RenderLoading places s and label in the middle of a width x height area.
func RenderLoading(s spinner.Model, label string, width, height int) string {
	return styles.CenterBoth(s.View()+" "+spinnerLabelStyle.Render(label), width, height)
}
