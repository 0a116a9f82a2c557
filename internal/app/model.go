// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/export"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabPoints shows one chart per interconnection point.
	TabPoints TabID = iota
	// TabComposites shows the aligned composite sums.
	TabComposites
	// TabInfo shows configuration, catalog and cache status.
	TabInfo

	tabCount = int(TabInfo) + 1
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabPoints:
		return "Points"
	case TabComposites:
		return "Composites"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab is implemented by every screen of the dashboard. The root model
// forwards each message to the active tab after handling it.
type Tab interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Tab, tea.Cmd)
	View() string
	SetSize(width, height int)
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// Model is the main application model.
type Model struct {
	activeTab TabID
	tabs      []Tab

	state    *State
	services *services.Manager
	keymap   KeyMap
	styles   Styles
	spinner  spinner.Model

	width, height int
	showHelp      bool
	ready         bool

	// In-flight snapshot request. Only the result tagged with loadSeq is applied.
	loadSeq    uint64
	cancelLoad context.CancelFunc

	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model. mgr may be nil, in which case
// nothing is ever fetched.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Model{
		activeTab: TabPoints,
		tabs:      make([]Tab, tabCount),
		state:     NewState(),
		services:  mgr,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   s,
	}
}

// SetTabs installs the tab screens in TabID order.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.resizeTabs()
	}
}

// GetState returns the state shared with the tabs.
func (m *Model) GetState() *State {
	return m.state
}

// Init starts the first load, the housekeeping tick and the tabs.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Fetching gas flows...")

	cmds := []tea.Cmd{m.spinner.Tick, tickCmd()}
	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services), m.startLoad(false))
	}
	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.handle(msg)}

	if tab := m.currentTab(); tab != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = tab.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resizeTabs()
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case TickMsg:
		m.state.ClearExpiredNotifications()
		if m.services != nil {
			return tea.Batch(tickCmd(), loadStatsCmd(m.services))
		}
		return tickCmd()
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		return waitForServiceEventCmd(m.eventChannel)
	case ServiceEventMsg:
		cmd := m.handleServiceEvent(msg.Event)
		if m.eventChannel != nil {
			cmd = tea.Batch(cmd, waitForServiceEventCmd(m.eventChannel))
		}
		return cmd

	case SnapshotLoadedMsg:
		return m.handleSnapshotLoaded(msg)
	case StatsLoadedMsg:
		m.state.SetStats(msg.Stats)
	case RefreshMsg:
		return m.startLoad(msg.Force)
	case ExportMsg:
		return m.startExport(msg.Format)
	case ExportResultMsg:
		return m.handleExportResult(msg)

	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			return clearNotificationCmd(id, msg.Duration)
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case StartLoadingMsg:
		m.state.SetLoading(msg.Resource, true)
	case StopLoadingMsg:
		m.state.SetLoading(msg.Resource, false)
		m.clearLoadingToast()
	case ErrorMsg:
		text := msg.Error.Error()
		if msg.Context != "" {
			text = msg.Context + ": " + text
		}
		return notify(NotificationError, text)

	case TabSwitchMsg:
		m.switchTab(msg.Tab)
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) clearLoadingToast() {
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
}

// startLoad cancels any in-flight request and issues a new one for the current view.
func (m *Model) startLoad(force bool) tea.Cmd {
	if m.cancelLoad != nil {
		m.cancelLoad()
		m.cancelLoad = nil
	}
	m.loadSeq++

	if m.services == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelLoad = cancel
	m.state.SetLoading(ResourceSnapshot, true)
	m.state.SetLoadingNotification("Fetching gas flows...")

	return loadSnapshotCmd(ctx, m.services, m.loadSeq, m.state.GetView(), force)
}

func (m *Model) handleSnapshotLoaded(msg SnapshotLoadedMsg) tea.Cmd {
	if msg.Seq != m.loadSeq {
		return nil
	}
	if m.cancelLoad != nil {
		m.cancelLoad()
		m.cancelLoad = nil
	}

	m.state.SetLoading(ResourceInitial, false)
	m.state.SetLoading(ResourceSnapshot, false)
	m.clearLoadingToast()

	switch {
	case errors.Is(msg.Err, context.Canceled):
		return nil
	case msg.Err != nil:
		m.state.SetLastError(msg.Err)
		return notify(NotificationError, msg.Err.Error())
	}

	m.state.SetSnapshot(msg.Snapshot)

	var cmds []tea.Cmd
	if m.services != nil {
		cmds = append(cmds, loadStatsCmd(m.services))
	}
	if failed := failedComposites(msg.Snapshot); len(failed) > 0 {
		cmds = append(cmds, notify(NotificationWarning, "Axis mismatch: "+strings.Join(failed, ", ")))
	}
	return tea.Batch(cmds...)
}

func failedComposites(snap *models.Snapshot) []string {
	if snap == nil {
		return nil
	}
	var names []string
	for _, c := range snap.Composites {
		if !c.OK() {
			names = append(names, c.Series.Name)
		}
	}
	return names
}

func (m *Model) setView(v models.ViewConfig) tea.Cmd {
	m.state.SetView(v)
	return tea.Batch(
		func() tea.Msg { return ViewChangedMsg{View: v} },
		m.startLoad(false),
	)
}

func (m *Model) startExport(f export.Format) tea.Cmd {
	snap := m.state.GetSnapshot()
	if !snap.HasData() {
		return notify(NotificationWarning, "Nothing to export yet")
	}
	if m.services == nil {
		return nil
	}
	m.state.SetLoading(ResourceExport, true)
	return exportCmd(m.services, snap, f)
}

func (m *Model) handleExportResult(msg ExportResultMsg) tea.Cmd {
	m.state.SetLoading(ResourceExport, false)
	if msg.Error != nil {
		return notify(NotificationError, fmt.Sprintf("%s export failed: %v", msg.Format, msg.Error))
	}
	m.state.SetLastExport(msg.Path)
	return notify(NotificationSuccess, "Exported "+msg.Path)
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.CatalogChangedEvent:
		text := "Catalog reloaded"
		if e.Catalog != nil {
			text = fmt.Sprintf("Catalog reloaded: %d points, %d composites", len(e.Catalog.Points), len(e.Catalog.Composites))
		}
		return tea.Batch(notify(NotificationInfo, text), m.startLoad(false))

	case services.RefreshDueEvent:
		return m.startLoad(true)

	case services.ErrorEvent:
		return notify(NotificationError, fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}

func (m *Model) resizeTabs() {
	// navbar with border, status line, trailing newline
	contentHeight := max(0, m.height-4)
	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) switchTab(id TabID) {
	m.activeTab = id
	m.resizeTabs()
}

// handleKeyMsg handles the global keys. While help is open only the help,
// escape and quit keys are live.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	k := m.keymap

	switch {
	case key.Matches(msg, k.Quit):
		if m.cancelLoad != nil {
			m.cancelLoad()
		}
		return tea.Quit
	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		return nil
	case key.Matches(msg, k.Escape):
		m.showHelp = false
		return nil
	case m.showHelp:
		return nil
	}

	n := len(m.tabs)
	view := m.state.GetView()

	switch {
	case key.Matches(msg, k.Tab1):
		m.switchTab(TabPoints)
	case key.Matches(msg, k.Tab2):
		m.switchTab(TabComposites)
	case key.Matches(msg, k.Tab3):
		m.switchTab(TabInfo)
	case key.Matches(msg, k.NextTab):
		m.switchTab(TabID((int(m.activeTab) + 1) % n))
	case key.Matches(msg, k.PrevTab):
		m.switchTab(TabID((int(m.activeTab) - 1 + n) % n))

	case key.Matches(msg, k.Indicator):
		return m.setView(view.ToggleIndicator())
	case key.Matches(msg, k.Unit):
		return m.setView(view.ToggleUnit())
	case key.Matches(msg, k.Rate):
		return m.setView(view.ToggleRate())
	case key.Matches(msg, k.Align):
		return m.setView(view.ToggleAlign())
	case key.Matches(msg, k.Validation):
		return m.setView(view.ToggleValidation())

	case key.Matches(msg, k.Refresh):
		return m.startLoad(true)
	case key.Matches(msg, k.Export):
		return m.startExport(m.state.GetExportFormat())
	case key.Matches(msg, k.Format):
		return notify(NotificationInfo, "Export format: "+m.state.CycleExportFormat().String())
	}

	return nil
}
