package scaffold

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

type (
	// failingFS refuses to open one path of the wrapped tree.
	failingFS struct {
		fsys fstest.MapFS
		fail string
	}

	fakeRunner struct {
		exitCodes map[string]int
		errs      map[string]error
		commands  []Command
	}

	staticConfirmer struct {
		answer bool
		asked  []string
	}
)

func (f failingFS) Open(name string) (fs.File, error) {
	if name == f.fail {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}

	return f.fsys.Open(name)
}

func (r *fakeRunner) Run(_ context.Context, c Command) (CommandResult, error) {
	r.commands = append(r.commands, c)

	key := c.String()

	if err := r.errs[key]; err != nil {
		return CommandResult{ExitCode: -1}, err
	}

	if code := r.exitCodes[key]; code != 0 {
		return CommandResult{ExitCode: code, Output: []byte("boom")}, nil
	}

	if key == "git init" {
		if err := os.Mkdir(filepath.Join(c.Dir, ".git"), 0750); err != nil {
			return CommandResult{}, err
		}
	}

	return CommandResult{Output: []byte("ok")}, nil
}

func (c *staticConfirmer) ConfirmOverwrite(path string) (bool, error) {
	c.asked = append(c.asked, path)

	return c.answer, nil
}

func readString(t *testing.T, path string) string {
	t.Helper()

	contents, err := os.ReadFile(filepath.Clean(path))
	require.NoError(t, err)

	return string(contents)
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names
}

func readFS(fsys fs.FS, name string) ([]byte, error) {
	return fs.ReadFile(fsys, name)
}
