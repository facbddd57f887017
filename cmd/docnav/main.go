package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/cmd/docnav/commands"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docnav"),
		kong.Description("Compile a Markdown documentation tree into navigation artifacts."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := commands.NewGlobal(version.Version)
	if err := parser.Run(global, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
