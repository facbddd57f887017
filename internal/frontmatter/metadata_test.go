package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMetadata_AllFields(t *testing.T) {
	raw := []byte(`title: Setup
description: Install the CLI
category: guides
position: 2
order: 7
icon: Wrench
lastUpdated: 2024-03-01
tags: [install, cli]
related:
  - /docs/guides/advanced
collapsed: true
`)
	meta, err := ParseMetadata(raw)
	require.NoError(t, err)
	require.Equal(t, "Setup", meta.Title)
	require.Equal(t, "Install the CLI", meta.Description)
	require.Equal(t, "guides", meta.Category)
	require.Equal(t, "Wrench", meta.Icon)
	require.Equal(t, "2024-03-01", meta.LastUpdated)
	require.Equal(t, []string{"install", "cli"}, meta.Tags)
	require.Equal(t, []string{"/docs/guides/advanced"}, meta.Related)
	require.True(t, meta.Collapsed)
	require.InDelta(t, 2.0, meta.ResolveOrder(999), 0)
}

func TestParseMetadata_Empty(t *testing.T) {
	meta, err := ParseMetadata(nil)
	require.NoError(t, err)
	require.Equal(t, Metadata{}, meta)
	require.False(t, meta.Collapsed)
}

func TestParseMetadata_SyntaxErrorYieldsEmpty(t *testing.T) {
	meta, err := ParseMetadata([]byte("title: [unterminated\n"))
	require.Error(t, err)
	require.Equal(t, Metadata{}, meta)
}

func TestParseMetadata_TypeErrorKeepsValidFields(t *testing.T) {
	meta, err := ParseMetadata([]byte("title: Kept\nposition: first\ntags: [a, b]\n"))
	require.Error(t, err)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, []string{"position"}, fieldErr.Fields)
	require.Equal(t, "Kept", meta.Title)
	require.Equal(t, []string{"a", "b"}, meta.Tags)
	require.Nil(t, meta.Position, "a rejected number must not default to zero")
}

func TestParseMetadata_NotMapping(t *testing.T) {
	meta, err := ParseMetadata([]byte("- just\n- a list\n"))
	require.ErrorIs(t, err, ErrNotMapping)
	require.Equal(t, Metadata{}, meta)
}

func TestParseMetadata_NullAndUnknownKeys(t *testing.T) {
	meta, err := ParseMetadata([]byte("position: ~\ntitle:\nsidebar_label: Other\n"))
	require.NoError(t, err)
	require.Nil(t, meta.Position)
	require.Empty(t, meta.Title)
}

func TestParseMetadata_CommentOnly(t *testing.T) {
	meta, err := ParseMetadata([]byte("# nothing here\n"))
	require.NoError(t, err)
	require.Equal(t, Metadata{}, meta)
}

func TestResolveOrder(t *testing.T) {
	one, five := 1.0, 5.0
	require.InDelta(t, 1.0, Metadata{Position: &one, Order: &five}.ResolveOrder(999), 0)
	require.InDelta(t, 5.0, Metadata{Order: &five}.ResolveOrder(999), 0)
	require.InDelta(t, 999.0, Metadata{}.ResolveOrder(999), 0)

	zero := 0.0
	require.InDelta(t, 0.0, Metadata{Position: &zero}.ResolveOrder(999), 0, "explicit zero is honoured")
}

func TestTitleOr(t *testing.T) {
	require.Equal(t, "Fallback", Metadata{Title: "   "}.TitleOr("Fallback"))
	require.Equal(t, "Real", Metadata{Title: " Real "}.TitleOr("Fallback"))
}
