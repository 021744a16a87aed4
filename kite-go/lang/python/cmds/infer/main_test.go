package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonanalyzer"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/kiteco/pyeval/kite-golib/kitelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T) (string, []string) {
	dir, err := ioutil.TempDir("", "infer")
	require.NoError(t, err)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "helper.py"), []byte("VALUE = 1\n"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "main.py"), []byte("import helper\nx = helper.VALUE\n"), 0644))
	return dir, []string{filepath.ToSlash(filepath.Join(dir, "main.py"))}
}

func TestAnalyze(t *testing.T) {
	dir, files := writeProject(t)
	defer os.RemoveAll(dir)

	cfg := pythonanalyzer.DefaultConfig()
	cfg.SysPath = dirs(files)

	var buf bytes.Buffer
	analyze(&buf, cfg, files, kitelog.Nop, runOptions{aborts: kitectx.InitializeMetrics()})

	out := buf.String()
	assert.Contains(t, out, "main ("+files[0]+")")
	assert.Contains(t, out, "  helper: helper\n")
	assert.Contains(t, out, "  x: instanceof builtins.int\n")
	assert.Contains(t, out, "[pythoneval]")
	assert.Contains(t, out, "[aborts]")
}

func TestAnalyzeCountsAborts(t *testing.T) {
	dir, files := writeProject(t)
	defer os.RemoveAll(dir)

	cfg := pythonanalyzer.DefaultConfig()
	cfg.SysPath = dirs(files)
	cfg.Options.MaxRecursionDepth = 1

	aborts := kitectx.InitializeMetrics()
	before := aborts.Read().CallLimit

	var buf bytes.Buffer
	analyze(&buf, cfg, files, kitelog.Nop, runOptions{aborts: aborts})

	assert.Contains(t, buf.String(), "  x: unknown\n")
	assert.True(t, aborts.Read().CallLimit > before)
	assert.Regexp(t, `\[aborts\]\n  call limit +[1-9]`, buf.String())
}

func TestAnalyzeTimeout(t *testing.T) {
	dir, files := writeProject(t)
	defer os.RemoveAll(dir)

	cfg := pythonanalyzer.DefaultConfig()
	cfg.SysPath = dirs(files)

	var buf bytes.Buffer
	analyze(&buf, cfg, files, kitelog.Nop, runOptions{timeout: time.Minute})
	assert.Contains(t, buf.String(), "  x: instanceof builtins.int\n")
	assert.NotContains(t, buf.String(), "[aborts]")
}

func TestWriteAborts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAborts(&buf, kitectx.MetricsSnapshot{CallLimit: 1200, DeadlineExceeded: 2}))
	out := buf.String()
	assert.Contains(t, out, "[aborts]\n")
	assert.Regexp(t, `call limit +1,200\n`, out)
	assert.Regexp(t, `deadline exceeded +2\n`, out)
	assert.Regexp(t, `canceled +0\n`, out)
}

func TestDirs(t *testing.T) {
	assert.Equal(t, []string{"/a", "/b"}, dirs([]string{"/a/x.py", "/b/y.py", "/a/z.py"}))
}
