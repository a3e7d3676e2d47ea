package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vertigo/internal/staticparams"
)

const testSite = `
verticals:
  - slug: budget-travel
    display_name: Budget Travel
    content_types: [destinations, blog]
partners:
  - id: stayfinder
    name: StayFinder
    categories: [hotel]
    url_template: "https://stayfinder.example/{destination}"
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

// setupEnv writes a site file and a small content tree and points the
// configuration at them.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := filepath.Join(dir, "content")
	writeFile(t, filepath.Join(dir, "site.yaml"), testSite)
	writeFile(t, filepath.Join(content, "budget-travel", "destinations", "paris.md"),
		"---\ntitle: Paris\ndate: 2024-01-10\ntags: [france]\n---\nCheap eats.\n")
	writeFile(t, filepath.Join(content, "budget-travel", "destinations", "rome.md"),
		"---\ntitle: Rome\ndate: 2024-01-12\ntags: [italy]\n---\nFree fountains.\n")
	writeFile(t, filepath.Join(content, "budget-travel", "blog", "paris-on-a-budget.md"),
		"---\ntitle: Paris on a Budget\ndate: 2024-03-01\ntags: [france]\n---\nMetro tickets.\n")

	t.Setenv("APP_ENV", "testing")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SITE_URL", "https://vertigo.example")
	t.Setenv("SITE_FILE", filepath.Join(dir, "site.yaml"))
	t.Setenv("CONTENT_SOURCE", "files")
	t.Setenv("CONTENT_DIR", content)
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "vertigo.db"))
	t.Setenv("VALKEY_HOST", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParamsCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "params", "--type", "destinations")
	require.NoError(t, err)

	var got []staticparams.Pair
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	want := []staticparams.Pair{
		{Vertical: "budget-travel", Slug: "rome"},
		{Vertical: "budget-travel", Slug: "paris"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	_, err = run(t, "params", "--type", "podcasts")
	assert.Error(t, err)
}

func TestParamsAllTypes(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "params")
	require.NoError(t, err)

	var got []staticparams.Param
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 3)
}

func TestSitemapCommand(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "sitemap.xml")

	_, err := run(t, "sitemap", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, "<loc>https://vertigo.example/budget-travel/blog/paris-on-a-budget/</loc>")
}

func TestSiteFlagOverridesEnv(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "--site", filepath.Join(t.TempDir(), "missing.yaml"), "params")
	assert.Error(t, err)
}

// TestImportThenServeFromSQLite copies the content tree into SQLite and
// enumerates it back through the SQL source.
func TestImportThenServeFromSQLite(t *testing.T) {
	setupEnv(t)
	t.Setenv("CONTENT_SOURCE", "sqlite")

	out, err := run(t, "import")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 3 items")

	out, err = run(t, "params", "--type", "blog")
	require.NoError(t, err)
	var got []staticparams.Pair
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []staticparams.Pair{{Vertical: "budget-travel", Slug: "paris-on-a-budget"}}, got)
}

func TestMigrateRequiresDatabaseSource(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "has no database")
}

// TestExecuteFlushesOnFailure verifies that the logger installed by the
// pre-run hook is flushed even when the command itself fails.
func TestExecuteFlushesOnFailure(t *testing.T) {
	setupEnv(t)
	c := &cli{}
	cmd := c.command()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"migrate"})

	err := c.execute(cmd)
	require.Error(t, err)
	require.NotNil(t, c.cfg, "pre-run hook should have loaded config")
	assert.Nil(t, c.flush, "logger should have been flushed")
}
