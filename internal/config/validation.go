package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Validate normalizes enum and path fields in place and reports the first
// invalid setting as a classified config error.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Docs.Root) == "" {
		return invalid("docs.root", "documentation root must not be empty")
	}
	if strings.TrimSpace(c.Docs.ManifestName) == "" {
		return invalid("docs.manifest_name", "manifest name must not be empty")
	}
	if strings.ContainsAny(c.Docs.ManifestName, `/\`) {
		return invalid("docs.manifest_name", "manifest name must be a bare file name")
	}
	if strings.TrimSpace(c.Output.Navigation) == "" {
		return invalid("output.navigation", "navigation output path must not be empty")
	}
	if strings.TrimSpace(c.Output.Pages) == "" {
		return invalid("output.pages", "pages output path must not be empty")
	}
	if c.Output.Navigation == c.Output.Pages {
		return invalid("output.pages", "navigation and pages outputs must differ")
	}
	for _, ext := range c.Docs.Extensions {
		if strings.TrimSpace(ext) == "" {
			return invalid("docs.extensions", "extensions must not be empty strings")
		}
	}
	for _, pattern := range c.Docs.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return invalid("docs.exclude", fmt.Sprintf("invalid exclude pattern %q", pattern))
		}
	}
	if c.Synth.Concurrency < 0 {
		return invalid("synth.concurrency", "concurrency must not be negative")
	}

	c.Docs.URLPrefix = NormalizeURLPrefix(c.Docs.URLPrefix)

	level, err := logLevels.Parse(string(c.Logging.Level))
	if err != nil {
		return invalid("logging.level", err.Error())
	}
	c.Logging.Level = level

	format, err := logFormats.Parse(string(c.Logging.Format))
	if err != nil {
		return invalid("logging.format", err.Error())
	}
	c.Logging.Format = format

	return nil
}

// NormalizeURLPrefix returns prefix with exactly one leading slash and no
// trailing slash. An empty or root-only prefix becomes "".
func NormalizeURLPrefix(prefix string) string {
	trimmed := strings.Trim(strings.TrimSpace(prefix), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

func invalid(field, message string) error {
	return ferrors.ConfigError(message).
		WithContext("field", field).
		Build()
}
