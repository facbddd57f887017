package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if classified, ok := AsClassified(err); ok {
		return exitCodeFromClassified(classified)
	}

	return 1
}

func exitCodeFromClassified(err *ClassifiedError) int {
	switch err.Category() {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryNotFound:
		return 3
	case CategoryConfig:
		return 7
	case CategoryDocs, CategoryManifest, CategoryFileSystem:
		return 11 // Build error
	case CategoryEventStore:
		return 12
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	if a.verbose {
		return fmt.Sprintf("Error: %v", err)
	}

	msg := "Error: " + classified.Message()
	keys := make([]string, 0, len(classified.Context()))
	for k := range classified.Context() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		msg += fmt.Sprintf(" %s=%v", k, classified.Context()[k])
	}
	return msg
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	a.logError(err)
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	a.exit(exitCode)
}

func (a *CLIErrorAdapter) logError(err error) {
	if classified, ok := AsClassified(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(classified.Category())),
		}
		if classified.Cause() != nil {
			attrs = append(attrs, slog.String("cause", classified.Cause().Error()))
		}
		a.logger.LogAttrs(context.Background(), slogLevelFromSeverity(classified.Severity()), classified.Message(), attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
