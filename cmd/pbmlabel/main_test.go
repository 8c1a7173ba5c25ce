package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// 3x3 with every pixel set except the centre
const ring = "P4\n# ring\n3 3\n\xe0\xa0\xe0"

type result struct {
	stdout, stderr string
	exit           int
	err            error
}

func run(t *testing.T, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	r := result{exit: -1}

	oldErrWriter, oldExiter := cli.ErrWriter, cli.OsExiter
	defer func() {
		cli.ErrWriter, cli.OsExiter = oldErrWriter, oldExiter
	}()
	cli.ErrWriter = &stderr
	cli.OsExiter = func(code int) {
		if r.exit < 0 {
			r.exit = code
		}
	}

	app := newApp(t.TempDir())
	app.Writer = &stdout
	app.ErrWriter = &stderr

	r.err = app.Run(append([]string{"pbmlabel"}, args...))
	r.stdout, r.stderr = stdout.String(), stderr.String()
	return r
}

func writeRing(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "ring.pbm")
	require.NoError(t, os.WriteFile(file, []byte(ring), 0644))
	return file
}

func TestLabelCommand(t *testing.T) {
	file := writeRing(t)
	want := "Input file: 3 (W) X 3 (H)\n" +
		"Color used: 1\n" +
		" 1 1 1\n" +
		" 1   1\n" +
		" 1 1 1\n"

	tables := map[string][]string{
		"default": {file},
		"label":   {"label", file},
	}

	for name, args := range tables {
		t.Run(name, func(t *testing.T) {
			r := run(t, args...)
			require.NoError(t, r.err)
			assert.Equal(t, want, r.stdout)
			assert.Empty(t, r.stderr)
			assert.Equal(t, -1, r.exit, "should not exit")
		})
	}
}

func TestLabelCommandBackground(t *testing.T) {
	r := run(t, "--background", ".", "label", writeRing(t))
	require.NoError(t, r.err)
	assert.Equal(t, "Input file: 3 (W) X 3 (H)\nColor used: 1\n 1 1 1\n 1 . 1\n 1 1 1\n", r.stdout)
}

func TestLabelCommandErrors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.pbm")
	require.NoError(t, os.WriteFile(short, []byte("P4 3 3\n\xe0"), 0644))
	notP4 := filepath.Join(dir, "p1.pbm")
	require.NoError(t, os.WriteFile(notP4, []byte("P1\n3 3\n"), 0644))

	tables := map[string]string{
		"missing": filepath.Join(dir, "missing.pbm"),
		"short":   short,
		"not p4":  notP4,
	}

	for name, file := range tables {
		t.Run(name, func(t *testing.T) {
			r := run(t, "label", file)
			require.Error(t, r.err)

			exitErr, ok := r.err.(cli.ExitCoder)
			require.True(t, ok)
			assert.Equal(t, 1, exitErr.ExitCode())
			assert.Equal(t, 1, r.exit)

			// One diagnostic line and no partial output
			assert.True(t, strings.HasPrefix(r.stderr, "ERROR: "), r.stderr)
			assert.Equal(t, 1, strings.Count(r.stderr, "\n"))
			assert.Contains(t, r.stderr, file)
			assert.Empty(t, r.stdout)
		})
	}
}

func TestScanCommand(t *testing.T) {
	file := writeRing(t)
	db := filepath.Join(t.TempDir(), "test.db")

	r := run(t, "--db", db, "scan", filepath.Dir(file))
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "Scan "), r.stdout)
	assert.True(t, strings.HasSuffix(r.stdout, ": 1 images, 1 components, mean area 8.00 (stddev 0.00)\n"), r.stdout)
	assert.FileExists(t, db)
}
