package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping indicates a frontmatter block that parsed as YAML but is not
// a key/value mapping.
var ErrNotMapping = errors.New("frontmatter is not a key/value mapping")

// Metadata is the recognised frontmatter schema. Every field is optional;
// numeric ordering fields are pointers so an explicit 0 is distinguishable
// from an absent value. Unknown keys are ignored.
type Metadata struct {
	Title       string
	Description string
	Category    string
	Position    *float64
	Order       *float64
	Icon        string
	LastUpdated string
	Tags        []string
	Related     []string
	Collapsed   bool
}

// ResolveOrder prefers position, then the legacy order key, then def.
func (m Metadata) ResolveOrder(def float64) float64 {
	if m.Position != nil {
		return *m.Position
	}
	if m.Order != nil {
		return *m.Order
	}
	return def
}

// TitleOr returns the trimmed title, or fallback when it is blank.
func (m Metadata) TitleOr(fallback string) string {
	if t := strings.TrimSpace(m.Title); t != "" {
		return t
	}
	return fallback
}

// FieldError lists recognised keys whose values had the wrong type. The
// remaining fields were still decoded.
type FieldError struct {
	Fields []string
	Errs   []error
}

func (e *FieldError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s (%v)", f, e.Errs[i])
	}
	return "unexpected field type: " + strings.Join(parts, ", ")
}

// ParseMetadata decodes raw YAML frontmatter (without delimiters).
//
// A syntax error or a non-mapping document yields empty metadata and the
// error. Fields of the wrong type are skipped and reported together in a
// *FieldError while every other field is kept.
func ParseMetadata(raw []byte) (Metadata, error) {
	var meta Metadata
	if len(bytes.TrimSpace(raw)) == 0 {
		return meta, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Metadata{}, err
	}
	if len(doc.Content) == 0 {
		return meta, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Metadata{}, ErrNotMapping
	}

	var fieldErr FieldError
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]
		if val.Tag == "!!null" {
			continue
		}
		if err := meta.decodeField(key, val); err != nil {
			fieldErr.Fields = append(fieldErr.Fields, key)
			fieldErr.Errs = append(fieldErr.Errs, err)
		}
	}
	if len(fieldErr.Fields) > 0 {
		return meta, &fieldErr
	}
	return meta, nil
}

func (m *Metadata) decodeField(key string, val *yaml.Node) error {
	switch key {
	case "title":
		return decodeInto(val, &m.Title)
	case "description":
		return decodeInto(val, &m.Description)
	case "category":
		return decodeInto(val, &m.Category)
	case "icon":
		return decodeInto(val, &m.Icon)
	case "lastUpdated":
		return decodeInto(val, &m.LastUpdated)
	case "tags":
		return decodeInto(val, &m.Tags)
	case "related":
		return decodeInto(val, &m.Related)
	case "collapsed":
		return decodeInto(val, &m.Collapsed)
	case "position":
		return decodeNumber(val, &m.Position)
	case "order":
		return decodeNumber(val, &m.Order)
	}
	return nil
}

// decodeInto only assigns to dst when the whole value decodes.
func decodeInto[T any](val *yaml.Node, dst *T) error {
	var v T
	if err := val.Decode(&v); err != nil {
		return err
	}
	*dst = v
	return nil
}

func decodeNumber(val *yaml.Node, dst **float64) error {
	var f float64
	if err := val.Decode(&f); err != nil {
		return err
	}
	*dst = &f
	return nil
}
