package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/styles"
)

// ScrollKeys are the scrolling bindings shared by every tab. Letters used by
// the global toggles (u, h, b, ...) must not appear here.
type ScrollKeys struct {
	Up, Down, PageUp, PageDown key.Binding
}

// DefaultScrollKeys returns the arrow, vi and paging keys.
func DefaultScrollKeys() ScrollKeys {
	return ScrollKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	}
}

// All returns the bindings in help order.
func (k ScrollKeys) All() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown}
}

// ScrollPane is a scrollable tab body inside the document margins.
type ScrollPane struct {
	Width, Height int
	viewport      viewport.Model
}

// NewScrollPane returns an empty pane scrolled by keys; call SetSize before
// rendering.
func NewScrollPane(keys ScrollKeys) ScrollPane {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		Up:       keys.Up,
		Down:     keys.Down,
		PageUp:   keys.PageUp,
		PageDown: keys.PageDown,
	}
	return ScrollPane{viewport: vp}
}

// SetSize sets the outer size. The viewport gets what the margins leave.
func (p *ScrollPane) SetSize(width, height int) {
	p.Width, p.Height = width, height
	p.viewport.Width = max(width-6, 0)
	p.viewport.Height = max(height-2, 0)
}

// ViewportSize reports the inner scrollable area.
func (p ScrollPane) ViewportSize() (int, int) {
	return p.viewport.Width, p.viewport.Height
}

// Update scrolls on key and mouse messages.
func (p *ScrollPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *ScrollPane) GotoTop() { p.viewport.GotoTop() }

// Render shows content scrolled to the current offset.
func (p *ScrollPane) Render(content string) string {
	p.viewport.SetContent(content)
	return p.Frame(p.viewport.View())
}

// Frame places unscrolled content, such as a spinner or an error, in the pane.
func (p ScrollPane) Frame(content string) string {
	return styles.DocStyle.Width(p.Width).Height(p.Height).Render(content)
}
