package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"timeline/internal/config"
	"timeline/internal/eventbus"
	"timeline/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath  string
		location    string
		filter      string
		logPath     string
		noAltScreen bool
	)
	flag.StringVarP(&configPath, "config", "c", "", "Config file (default $TIMELINE_CONFIG or the user config dir)")
	flag.StringVarP(&location, "source", "s", "", "Event source: a JSON, TOML or YAML file or an http(s) URL")
	flag.StringVarP(&filter, "filter", "f", "", "Category shown at startup")
	flag.StringVar(&logPath, "log-file", "", "Log file (\"-\" disables logging)")
	flag.BoolVar(&noAltScreen, "no-alt-screen", false, "Render inline instead of on the alternate screen")
	flag.Parse()

	// --source takes precedence over the positional argument
	if location == "" && flag.NArg() > 0 {
		location = flag.Arg(0)
	}

	// Load configuration before logging so the log target can come from it.
	// A broken config file falls back to defaults.
	bootSvc := config.NewConfigService(configPath)
	cfg, cfgErr := bootSvc.Load()
	if cfgErr != nil {
		cfg = config.DefaultConfig()
	}
	if logPath != "" {
		cfg.Log.File = logPath
	}
	if location != "" {
		cfg.Source.Location = location
	}
	if filter != "" {
		cfg.UI.DefaultFilter = filter
	}
	if noAltScreen {
		cfg.UI.AltScreen = false
	}

	// Set up logging; the terminal belongs to the UI
	logger, closeLog := newLogger(cfg.Log)
	defer closeLog()
	if cfgErr != nil {
		logger.Warn("config unreadable, using defaults", "path", bootSvc.Path(), "err", cfgErr)
	}

	// Create event bus
	bus := eventbus.New(logger)
	defer bus.Close()

	// Persist the last used filter on change
	_ = config.NewConfigServiceWithBus(configPath, bus, logger)

	bus.Subscribe(eventbus.EventModalOpened, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ModalOpenedEvent); ok {
			logger.Info("event details shown", "session", event.SessionID, "event", event.EventID)
		}
	})
	bus.Subscribe(eventbus.EventAnnounced, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.AnnouncedEvent); ok {
			logger.Debug("live region", "politeness", event.Politeness, "message", event.Message)
		}
	})

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	uiModel := ui.NewModel(ui.Options{
		Config: cfg,
		Bus:    bus,
		Logger: logger,
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Run the UI
	logger.Info("starting", "source", cfg.Source.Location)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("program failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Info("exited")
}

// newLogger opens the configured log file. Logging is discarded when the
// file is "-" or cannot be opened.
func newLogger(cfg config.LogConfig) (*slog.Logger, func()) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.File != "" && cfg.File != "-" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		} else {
			w = f
			closeFn = func() { _ = f.Close() }
		}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	return slog.New(handler), closeFn
}
