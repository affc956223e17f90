package scaffold

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cbroglie/mustache"
)

type (
	WriteHook func(io.Writer) error

	// Engine substitutes placeholders in a template text.
	Engine interface {
		Render(text string, data TemplateContext) (string, error)
	}

	MustacheEngine struct{}

	Renderer struct {
		engine Engine
		data   TemplateContext
	}
)

// TmpltExt marks a template file. It is stripped from the output file name.
const TmpltExt = ".tmplt"

// Render leaves missing keys empty, which is the mustache default.
func (MustacheEngine) Render(text string, data TemplateContext) (string, error) {
	tmplt, err := mustache.ParseString(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	out, err := tmplt.Render(map[string]any(data))
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return out, nil
}

func NewRenderer(engine Engine, data TemplateContext) *Renderer {
	if engine == nil {
		engine = MustacheEngine{}
	}

	return &Renderer{engine: engine, data: data}
}

// WriteToFile writes the output of hook to dir/name in one step: either the whole file appears or nothing does.
// dir must exist.
func WriteToFile(dir, name string, perm fs.FileMode, hook WriteHook) (err error) {
	fd, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %q: %w", name, err)
	}

	tmpName := fd.Name()

	defer func() {
		if err != nil {
			_ = fd.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = hook(fd); err != nil {
		return fmt.Errorf("failed to write to %q: %w", name, err)
	}

	if err = fd.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions of %q: %w", name, err)
	}

	if err = fd.Close(); err != nil {
		return fmt.Errorf("failed to close %q after writing: %w", name, err)
	}

	if err = os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to move %q into place: %w", name, err)
	}

	return nil
}

func filePerm(fsys fs.FS, src string) fs.FileMode {
	info, err := fs.Stat(fsys, src)
	if err == nil && info.Mode().Perm()&0o111 != 0 {
		return 0o755
	}

	return 0o644
}

// RenderFile writes the output for the template file src of fsys into destDir and returns the written path.
// Files ending in [TmpltExt] are rendered with the marker removed from the name, the rest are copied as is.
func (r *Renderer) RenderFile(fsys fs.FS, src, destDir string) (string, error) {
	contents, err := fs.ReadFile(fsys, src)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %q: %w", src, err)
	}

	name := path.Base(src)

	if strings.HasSuffix(name, TmpltExt) && len(name) > len(TmpltExt) {
		name = strings.TrimSuffix(name, TmpltExt)

		text, err := r.engine.Render(string(contents), r.data)
		if err != nil {
			return "", fmt.Errorf("failed to render %q: %w", src, err)
		}

		contents = []byte(text)
	}

	err = WriteToFile(destDir, name, filePerm(fsys, src), func(w io.Writer) error {
		_, err1 := w.Write(contents)

		return err1
	})
	if err != nil {
		return "", fmt.Errorf("failed to create new file from template %q: %w", src, err)
	}

	return filepath.Join(destDir, name), nil
}
