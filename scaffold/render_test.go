package scaffold

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenEngine struct{}

func (brokenEngine) Render(string, TemplateContext) (string, error) {
	return "", errors.New("broken engine")
}

func TestRenderFileTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"base/hello.txt.tmplt": {Data: []byte("Hello {{name}}{{missing}} over {{transport}}!")},
	}

	dest := t.TempDir()

	r := NewRenderer(nil, TemplateContext{"name": "foo", "transport": "stdio"})

	out, err := r.RenderFile(fsys, "base/hello.txt.tmplt", dest)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dest, "hello.txt"), out)
	assert.Equal(t, "Hello foo over stdio!", readString(t, out))
	assert.NoFileExists(t, filepath.Join(dest, "hello.txt.tmplt"))
}

func TestRenderFileVerbatim(t *testing.T) {
	data := []byte{0x00, 0xff, '{', '{', 'n', 'a', 'm', 'e', '}', '}', '\n'}

	fsys := fstest.MapFS{
		"base/logo.bin": {Data: data},
		"base/run.sh":   {Data: []byte("#!/bin/sh\n"), Mode: 0o755},
	}

	dest := t.TempDir()

	r := NewRenderer(MustacheEngine{}, TemplateContext{"name": "foo"})

	out, err := r.RenderFile(fsys, "base/logo.bin", dest)
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Clean(out))
	require.NoError(t, err)
	assert.Equal(t, data, contents)

	out, err = r.RenderFile(fsys, "base/run.sh", dest)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestRenderFileLeavesNothingBehindOnFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"base/a.txt.tmplt": {Data: []byte("{{name}}")},
	}

	dest := t.TempDir()

	r := NewRenderer(brokenEngine{}, TemplateContext{})

	_, err := r.RenderFile(fsys, "base/a.txt.tmplt", dest)
	require.Error(t, err)

	assert.Empty(t, listNames(t, dest))

	_, err = r.RenderFile(fsys, "base/missing.txt", dest)
	require.Error(t, err)
}

func TestWriteToFile(t *testing.T) {
	dir := t.TempDir()

	err := WriteToFile(dir, "out.txt", 0o644, func(w io.Writer) error {
		_, err1 := io.WriteString(w, "first")

		return err1
	})
	require.NoError(t, err)
	assert.Equal(t, "first", readString(t, filepath.Join(dir, "out.txt")))

	err = WriteToFile(dir, "out.txt", 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")

		return errors.New("disk full")
	})
	require.Error(t, err)

	assert.Equal(t, "first", readString(t, filepath.Join(dir, "out.txt")))
	assert.Equal(t, []string{"out.txt"}, listNames(t, dir))
}

func TestNewTemplateContext(t *testing.T) {
	data := NewTemplateContext(ProjectConfig{Name: "weather", Description: "Weather tools", Transport: TransportHTTP, IncludeExamples: true})

	assert.Equal(t, "weather", data["name"])
	assert.Equal(t, "Weather tools", data["description"])
	assert.Equal(t, "Weather tools", data["descriptionJSON"])
	assert.Equal(t, "http", data["transport"])
	assert.Equal(t, "Http", data["transportPascalCase"])
	assert.Equal(t, "http", data["transportLowerCase"])
	assert.Equal(t, "HTTP", data["transportUpperCase"])
	assert.Equal(t, true, data["includeExamples"])

	assert.Equal(t, "StreamableHttp", pascalCase("streamable-http"))

	data = NewTemplateContext(ProjectConfig{Description: `say "hi" \ bye`})
	assert.Equal(t, `say \"hi\" \\ bye`, data["descriptionJSON"])
}

func TestMustacheEngineEscaping(t *testing.T) {
	data := TemplateContext{"description": "R&D <tools>"}

	out, err := MustacheEngine{}.Render("{{{description}}}|{{description}}|{{missing}}", data)
	require.NoError(t, err)
	assert.Equal(t, "R&D <tools>|R&amp;D &lt;tools&gt;|", out)
}
