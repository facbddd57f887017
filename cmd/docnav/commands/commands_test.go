package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/eventstore"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("docnav"), kong.Vars{"version": "test"})
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = kctx.Run(&Global{Version: "test", Out: &out}, cli)
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestInitThenBuild(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, "init")
	require.NoError(t, err)
	require.Contains(t, out, "docnav.yaml")

	_, err = run(t, "init")
	require.Error(t, err)

	writeFile(t, filepath.Join(dir, "content", "docs", "guides", "setup.md"), "---\ntitle: Setup\n---\n")

	out, err = run(t, "build")
	require.NoError(t, err)
	require.Contains(t, out, "pages=1")
	require.Contains(t, out, "outcome=success")
	require.FileExists(t, filepath.Join(dir, "generated", "navigation.json"))
	require.FileExists(t, filepath.Join(dir, "generated", "pages.json"))
	require.FileExists(t, filepath.Join(dir, "content", "docs", "guides", "_meta.json"))
}

func TestBuild_MissingRootMapsToDocsExitCode(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docnav.yaml")
	writeFile(t, cfgPath, "docs:\n  root: "+filepath.Join(dir, "absent")+"\n")

	out, err := run(t, "-c", cfgPath, "build")
	require.Error(t, err)
	require.Contains(t, out, "outcome=failed")

	adapter := ferrors.NewCLIErrorAdapter(false, nil)
	require.Equal(t, 11, adapter.ExitCodeFor(err))
}

func TestBuild_ExplicitMissingConfig(t *testing.T) {
	_, err := run(t, "-c", filepath.Join(t.TempDir(), "nope.yaml"), "build")
	require.Error(t, err)
	require.Equal(t, 7, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestBuild_HistoryMetricsAndReport(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "docs")
	writeFile(t, filepath.Join(root, "api", "index.md"), "---\ntitle: API\n---\n")
	writeFile(t, filepath.Join(root, "api", "calls.md"), "")

	cfgPath := filepath.Join(dir, "docnav.yaml")
	writeFile(t, cfgPath, `
docs:
  root: `+root+`
output:
  navigation: `+filepath.Join(dir, "out", "nav.json")+`
  pages: `+filepath.Join(dir, "out", "pages.json")+`
metrics:
  textfile: `+filepath.Join(dir, "out", "docnav.prom")+`
history:
  database: `+filepath.Join(dir, "history.db")+`
`)

	reportPath := filepath.Join(dir, "out", "report.json")
	_, err := run(t, "-c", cfgPath, "build", "--report", reportPath)
	require.NoError(t, err)
	require.FileExists(t, reportPath)

	prom, err := os.ReadFile(filepath.Join(dir, "out", "docnav.prom"))
	require.NoError(t, err)
	require.Contains(t, string(prom), `docnav_build_outcomes_total{outcome="success"} 1`)

	out, err := run(t, "-c", cfgPath, "history", "-n", "5")
	require.NoError(t, err)
	require.Contains(t, out, "BUILD")
	require.Contains(t, out, "success")
}

func TestHistory_RequiresDatabase(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "history")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestHistory_Empty(t *testing.T) {
	t.Chdir(t.TempDir())
	store, err := eventstore.NewSQLiteStore("empty.db")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err := run(t, "history", "--database", "empty.db")
	require.NoError(t, err)
	require.Contains(t, out, "No builds recorded.")
}

func TestHistory_MissingDatabase(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "history", "--database", "absent.db")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	require.Equal(t, 3, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	require.NoFileExists(t, "absent.db")
}

func TestHistory_InvalidLimit(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "history", "-n", "0")
	require.Error(t, err)
	require.Equal(t, 2, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}
