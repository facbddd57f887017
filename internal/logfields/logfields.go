package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyRoot       = "root"
	KeyDir        = "dir"
	KeyPath       = "path"
	KeySlug       = "slug"
	KeyIssueCode  = "issue"
	KeyCount      = "count"
	KeyOutput     = "output"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func IssueCode(c string) slog.Attr    { return slog.String(KeyIssueCode, c) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
