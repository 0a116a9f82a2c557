package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/styles"
)

// Share is one member's contribution to a composite value.
type Share struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// Fraction returns the share of total, zero when total is not positive.
func (s Share) Fraction(total float64) float64 {
	if total <= 0 || math.IsNaN(s.Value) {
		return 0
	}
	return math.Max(0, math.Min(1, s.Value/total))
}

// RenderShareBars draws one bar per member scaled to the sum of all members.
// format renders the absolute value next to each bar.
func RenderShareBars(shares []Share, width int, format func(float64) string) string {
	if len(shares) == 0 {
		return ""
	}

	total := 0.0
	labelWidth := 0
	for _, s := range shares {
		if !math.IsNaN(s.Value) && s.Value > 0 {
			total += s.Value
		}
		labelWidth = max(labelWidth, lipgloss.Width(s.Label))
	}

	const (
		percentWidth = 6
		valueWidth   = 16
	)
	barWidth := max(width-labelWidth-percentWidth-valueWidth-4, 10)

	labelStyle := lipgloss.NewStyle().Width(labelWidth + 1).Foreground(styles.TextSecondary)
	percentStyle := lipgloss.NewStyle().Width(percentWidth).Align(lipgloss.Right)
	valueStyle := lipgloss.NewStyle().Width(valueWidth).Align(lipgloss.Right).Foreground(styles.TextPrimary)

	lines := make([]string, 0, len(shares))
	for _, s := range shares {
		frac := s.Fraction(total)
		bar := progress.New(
			progress.WithSolidFill(string(s.Color)),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center,
			labelStyle.Render(s.Label),
			bar.ViewAs(frac),
			" ",
			percentStyle.Render(fmt.Sprintf("%.0f%%", frac*100)),
			" ",
			valueStyle.Render(format(s.Value)),
		))
	}

	return strings.Join(lines, "\n")
}
