package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"notifeed/internal/app"
	"notifeed/internal/host"
	"notifeed/internal/model"
)

func main() {
	var cfgPath string
	flag.StringVar(
		&cfgPath, "config", model.DefaultConfigPath(),
		"path to config yaml",
	)
	flag.Parse()

	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	log, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
	defer closeLog()

	// The container, when present, wants these once at startup; both
	// are no-ops otherwise.
	h := host.Detect()
	h.Ready()
	h.Expand()

	m, err := app.New(cfg, h, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Push config file changes into the running program.
	model.WatchConfig(cfgPath,
		func(fresh *model.AppConfig) {
			p.Send(app.ConfigReloadedMsg{Config: fresh})
		},
		func(err error) {
			log.Error().Err(err).Msg("config reload failed")
		},
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

// newLogger opens the diagnostic log file. The TUI owns the terminal,
// so logs never go to stdout.
func newLogger(cfg model.LogConfig) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	path := cfg.File
	if path == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = "."
		}
		path = filepath.Join(home, ".config", "notifeed", "notifeed.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { _ = f.Close() }, nil
}
