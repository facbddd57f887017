// Package normalization maps loosely written config values onto typed enums.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Enum resolves case-insensitive, whitespace-tolerant spellings of a string
// enum. Several spellings may map to one value ("warn", "warning").
type Enum[T comparable] struct {
	name     string
	values   map[string]T
	names    []string
	fallback T
}

// NewEnum builds an Enum called name (used in error messages) whose empty or
// unknown input resolves to fallback in Lookup.
func NewEnum[T comparable](name string, values map[string]T, fallback T) *Enum[T] {
	e := &Enum[T]{
		name:     name,
		values:   make(map[string]T, len(values)),
		fallback: fallback,
	}
	for spelling, v := range values {
		key := clean(spelling)
		e.values[key] = v
		e.names = append(e.names, key)
	}
	slices.Sort(e.names)
	return e
}

// Lookup resolves raw, returning the fallback for anything unrecognised.
func (e *Enum[T]) Lookup(raw string) T {
	if v, ok := e.values[clean(raw)]; ok {
		return v
	}
	return e.fallback
}

// Parse resolves raw strictly. Empty input yields the fallback; any other
// unknown spelling is an error listing the accepted ones.
func (e *Enum[T]) Parse(raw string) (T, error) {
	key := clean(raw)
	if key == "" {
		return e.fallback, nil
	}
	if v, ok := e.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", e.name, raw, strings.Join(e.names, ", "))
}

// Names returns the accepted spellings in sorted order.
func (e *Enum[T]) Names() []string {
	return slices.Clone(e.names)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
