package diagnostics

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector_AddDefaultsAndSorts(t *testing.T) {
	c := NewCollector()
	c.Add(Issue{Code: CodeDanglingPage, Dir: "guides", Slug: "zeta", Message: "dangling page"})
	c.Add(Issue{Code: CodeManifestMissing, Dir: "api", Message: "manifest missing", Severity: SeverityInfo})
	c.Add(Issue{Code: CodeDanglingPage, Dir: "guides", Slug: "alpha", Message: "dangling page"})

	issues := c.Issues()
	require.Len(t, issues, 3)
	require.Equal(t, "api", issues[0].Dir)
	require.Equal(t, "alpha", issues[1].Slug)
	require.Equal(t, "zeta", issues[2].Slug)
	require.Equal(t, SeverityWarning, issues[1].Severity)
	require.Equal(t, SeverityInfo, issues[0].Severity)

	require.Equal(t, 2, c.CountByCode()[CodeDanglingPage])
	require.True(t, c.Has(CodeManifestMissing))
	require.False(t, c.Has(CodeDanglingCategory))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	c.Add(Issue{Code: CodeDanglingPage})
	require.Zero(t, c.Len())
	require.Empty(t, c.Issues())
	c.Flush(context.Background(), nil)
}

func TestCollector_ConcurrentAdd(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(Issue{Code: CodeFrontmatterMalformed, Message: "bad header"})
		}()
	}
	wg.Wait()
	require.Equal(t, 50, c.Len())
}

func TestCollector_FlushOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := NewCollector()
	c.Add(Issue{Code: CodeDanglingCategory, Dir: "guides", Slug: "missing-dir", Message: "Dangling category reference"})

	c.Flush(context.Background(), logger)
	c.Flush(context.Background(), logger)

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "Dangling category reference"))
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "issue=dangling_category")
	require.Contains(t, out, "slug=missing-dir")
}
