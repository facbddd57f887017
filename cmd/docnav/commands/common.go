// Package commands implements the docnav subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/observability"
)

// Global carries state shared by all subcommands.
type Global struct {
	Version string
	Out     io.Writer // user-facing output; logs go to stderr
}

// NewGlobal returns the default global state for the process.
func NewGlobal(version string) *Global {
	return &Global{Version: version, Out: os.Stdout}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: docnav.yaml if present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Synthesize manifests and write navigation artifacts"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
	History HistoryCmd `cmd:"" help:"List recent builds from the history database"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(observability.NewLogger(os.Stderr, level, string(config.LogFormatText)))
	return nil
}

// loadConfig loads the configuration named on the command line and applies
// its logging section. --verbose always wins over the configured level.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(observability.NewLogger(os.Stderr, level, string(cfg.Logging.Format)))
	return cfg, nil
}
