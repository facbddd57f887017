package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/docnav/internal/eventstore"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit    int    `short:"n" help:"Number of builds to list" default:"10"`
	Database string `help:"History database (overrides history.database)" type:"path"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	if h.Limit < 1 {
		return ferrors.ValidationError("--limit must be at least 1").
			WithContext("limit", h.Limit).
			Build()
	}
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	db := h.Database
	if db == "" {
		db = cfg.History.Database
	}
	if db == "" {
		return ferrors.ConfigError("no history database configured (set history.database or --database)").Build()
	}
	if _, err := os.Stat(db); err != nil {
		return ferrors.NotFoundError("history database does not exist, run a build first").
			WithCause(err).
			WithContext("database", db).
			Build()
	}

	store, err := eventstore.NewSQLiteStore(db)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	builds, err := eventstore.RecentBuilds(context.Background(), store, h.Limit)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		_, _ = fmt.Fprintln(g.Out, "No builds recorded.")
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "BUILD\tSTARTED\tSTATUS\tDURATION\tDOCS\tPAGES\tISSUES")
	for _, b := range builds {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			b.BuildID,
			b.StartedAt.Local().Format(time.DateTime),
			b.Status,
			b.Duration.Truncate(time.Millisecond),
			b.Documents,
			b.Pages,
			b.Issues)
	}
	return w.Flush()
}
