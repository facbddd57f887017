package config

import "maps"

// Default values applied when the configuration leaves a field empty.
const (
	DefaultRoot           = "content/docs"
	DefaultManifestName   = "_meta.json"
	DefaultURLPrefix      = "/docs"
	DefaultNavigationPath = "generated/navigation.json"
	DefaultPagesPath      = "generated/pages.json"
)

// DefaultExtensions are the document extensions recognised by default.
func DefaultExtensions() []string { return []string{".md", ".mdx"} }

// DefaultExclude are the exclude globs applied by default: hidden and
// underscore-prefixed names.
func DefaultExclude() []string { return []string{"_*", ".*"} }

// DefaultCategoryIcons maps well-known directory names to icon identifiers.
func DefaultCategoryIcons() map[string]string {
	return map[string]string{
		"guides":          "Map",
		"api":             "Code",
		"reference":       "BookOpen",
		"tutorials":       "GraduationCap",
		"getting-started": "Rocket",
		"concepts":        "Lightbulb",
		"examples":        "FileCode",
		"faq":             "HelpCircle",
		"architecture":    "Layers",
	}
}

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	return &Config{
		Docs: DocsConfig{
			Root:          DefaultRoot,
			Extensions:    DefaultExtensions(),
			Exclude:       DefaultExclude(),
			ManifestName:  DefaultManifestName,
			URLPrefix:     DefaultURLPrefix,
			CategoryIcons: DefaultCategoryIcons(),
		},
		Output: OutputConfig{
			Navigation: DefaultNavigationPath,
			Pages:      DefaultPagesPath,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// applyDefaults fills fields a loaded file left empty. Explicit empty lists
// for extensions are treated as unset; an explicit empty exclude list is kept.
func (c *Config) applyDefaults() {
	if c.Docs.Root == "" {
		c.Docs.Root = DefaultRoot
	}
	if len(c.Docs.Extensions) == 0 {
		c.Docs.Extensions = DefaultExtensions()
	}
	if c.Docs.Exclude == nil {
		c.Docs.Exclude = DefaultExclude()
	}
	if c.Docs.ManifestName == "" {
		c.Docs.ManifestName = DefaultManifestName
	}
	if c.Docs.CategoryIcons == nil {
		c.Docs.CategoryIcons = DefaultCategoryIcons()
	} else {
		merged := DefaultCategoryIcons()
		maps.Copy(merged, c.Docs.CategoryIcons)
		c.Docs.CategoryIcons = merged
	}
	if c.Output.Navigation == "" {
		c.Output.Navigation = DefaultNavigationPath
	}
	if c.Output.Pages == "" {
		c.Output.Pages = DefaultPagesPath
	}
}
