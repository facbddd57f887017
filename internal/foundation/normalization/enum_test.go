package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type level string

const (
	levelDebug level = "debug"
	levelInfo  level = "info"
	levelWarn  level = "warn"
)

func levels() *Enum[level] {
	return NewEnum("log level", map[string]level{
		"debug":   levelDebug,
		"info":    levelInfo,
		"WARN":    levelWarn,
		"warning": levelWarn,
	}, levelInfo)
}

func TestEnum_Lookup(t *testing.T) {
	e := levels()

	require.Equal(t, levelDebug, e.Lookup("  Debug "))
	require.Equal(t, levelWarn, e.Lookup("warn"))
	require.Equal(t, levelWarn, e.Lookup("Warning"))
	require.Equal(t, levelInfo, e.Lookup("verbose"))
	require.Equal(t, levelInfo, e.Lookup(""))
}

func TestEnum_Parse(t *testing.T) {
	e := levels()

	v, err := e.Parse("DEBUG")
	require.NoError(t, err)
	require.Equal(t, levelDebug, v)

	v, err = e.Parse("   ")
	require.NoError(t, err)
	require.Equal(t, levelInfo, v)

	_, err = e.Parse("trace")
	require.EqualError(t, err, `invalid log level "trace", valid options: debug, info, warn, warning`)
}

func TestEnum_Names(t *testing.T) {
	e := levels()

	names := e.Names()
	require.Equal(t, []string{"debug", "info", "warn", "warning"}, names)

	names[0] = "mutated"
	require.Equal(t, "debug", e.Names()[0])
}
