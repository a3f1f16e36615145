package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `# CC-CEDICT
# test fixture
中國 中国 [Zhong1 guo2] /China/country/
中心 中心 [zhong1 xin1] /center/heart/core/
書 书 [shu1] /book/
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestImportThenSearch(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	src := filepath.Join(dir, "cedict.txt")
	require.NoError(t, os.WriteFile(src, []byte(fixture), 0644))
	dbPath := filepath.Join(dir, "writer.sqlite")

	out, err := run(t, "--db", dbPath, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, `Imported 3 entries into "cc-cedict".`)

	out, err = run(t, "--db", dbPath, "search", "中")
	require.NoError(t, err)
	assert.Contains(t, out, "中国")
	assert.Contains(t, out, "中心")
	assert.Contains(t, out, "Zhong1 guo2")
	assert.Contains(t, out, "China; country")
	assert.NotContains(t, out, "书")
	assert.Contains(t, out, "(2 entries)")

	out, err = run(t, "--db", dbPath, "search", "国")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 entries)")
}

func TestImportParseErrorNamesLine(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	src := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(src, []byte("# header\n# header\n中國 中国 Zhong1 guo2] /China/\n"), 0644))

	_, err := run(t, "--db", filepath.Join(dir, "writer.sqlite"), "import", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on line 2: expected [")
}

func TestDocumentAndDictIDsAreStable(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "writer.sqlite")

	first, err := run(t, "--db", dbPath, "document", "general")
	require.NoError(t, err)
	again, err := run(t, "--db", dbPath, "document", "general")
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, "1", strings.TrimSpace(first))

	a, err := run(t, "--db", dbPath, "dict", "a")
	require.NoError(t, err)
	b, err := run(t, "--db", dbPath, "dict", "b")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestConfigFileIsUsed(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg := "database = \"" + filepath.ToSlash(filepath.Join(dir, "from-config.sqlite")) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0644))

	_, err := run(t, "dict", "x")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "from-config.sqlite"))
	assert.NoError(t, err)
}

func TestMissingExplicitConfigFails(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "--config", "nope.toml", "dict", "x")
	assert.Error(t, err)
}
