// Package main is the entry point for the gas flow dashboard.
// It loads configuration, starts the services and runs the Bubble Tea program.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/app"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/config"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/logger"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/tabs/composites"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/tabs/points"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version", "version":
			fmt.Println(version.Info())
			return
		case "-h", "--help", "help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q\n\n", os.Args[1])
			printUsage()
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// The TUI owns stdout, so logs go to a file.
	logFile, err := logger.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger.Info("starting", "version", version.GetVersion(), "feed", cfg.BaseURL, "from", cfg.FromDate)

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			logger.Warn("closing services", "error", err)
		}
	}()

	model := app.NewModel(mgr)
	state := model.GetState()
	model.SetTabs([]app.Tab{
		points.New(state),
		composites.New(state),
		info.New(state, mgr),
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// A signal cancels ctx, which ends the program with ErrProgramKilled.
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}

	logger.Info("stopped")
	return nil
}

func printUsage() {
	fmt.Println(`gasflow - daily gas flows at interconnection points

Usage:
  gasflow [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Run without flags to start the dashboard.

Keyboard Shortcuts:
  1-3             Switch between tabs (Points, Composites, Info)
  Tab/Shift+Tab   Navigate between tabs
  a               Toggle physical flow / allocation
  u               Toggle energy / volume
  h               Toggle daily / hourly average
  m               Toggle strict / trust-first alignment
  v               Toggle axis validation
  r               Refresh data (bypasses the cache)
  e               Export the current view
  E               Cycle export format (XLSX, PDF, HTML, PNG)
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  ENTSOG_BASE_URL   Transparency API base URL
  CATALOG_PATH      YAML catalog of points and composites (default: embedded)
  FROM_DATE         First gas day to fetch, YYYY-MM-DD (default: 2022-01-01)
  TIMEZONE          Time zone passed to the feed (default: CET)
  HTTP_TIMEOUT      Per-request timeout (default: 30s)
  CACHE_TTL         How long fetched series are reused (default: 5m)
  REFRESH_SCHEDULE  Cron spec for automatic refresh, empty disables (default: @hourly)
  EXPORT_DIR        Directory for exported files
  LOG_FILE          Log file path
  LOG_LEVEL         debug, info, warn or error (default: info)
  NOTIFY            Desktop notifications on failures (default: false)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/gasflow/.env
  - ~/.gasflow/.env`)
}
