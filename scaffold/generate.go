package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/viniciuscsouza/create-mcp-server/validate"
)

type (
	// Logger receives progress messages. *log.Logger from charmbracelet/log satisfies it.
	Logger interface {
		Debug(msg any, keyvals ...any)
		Info(msg any, keyvals ...any)
	}

	// Confirmer asks whether an existing path may be replaced.
	Confirmer interface {
		ConfirmOverwrite(path string) (bool, error)
	}

	// GenerateOptions holds the configuration and collaborators of one generation run.
	GenerateOptions struct {
		// Templates replaces the tree resolved from Config.Source when set.
		Templates fs.FS
		Runner    Runner
		// Confirmer is nil in non-interactive runs; an occupied target is then an error.
		Confirmer Confirmer
		Logger    Logger
		Out       io.Writer
		WorkDir   string
		Config    ProjectConfig
	}

	Generator struct {
		opts     GenerateOptions
		composer *Composer
	}

	Result struct {
		TargetDir string
		// Files are relative to TargetDir, slash separated, in the order they were written.
		Files []string
	}

	target struct {
		keep    map[string]bool
		dir     string
		created bool
	}

	composeStep struct {
		root string
		dest string
	}

	nopLogger struct{}
)

var nextStepsTmplt = template.Must(template.New("next-steps").Parse(`
Project {{.Name}} created at {{.TargetDir}}

Next steps:
  cd {{.Name}}
{{- if not .Installed}}
  npm install
{{- end}}
  npm run build
  npm start
`))

func (nopLogger) Debug(any, ...any) {}

func (nopLogger) Info(any, ...any) {}

func NewGenerator(opts GenerateOptions) *Generator {
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}

	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	renderer := NewRenderer(MustacheEngine{}, NewTemplateContext(opts.Config))

	return &Generator{opts: opts, composer: NewComposer(renderer)}
}

func (t *target) cleanup() error {
	if t.created {
		if err := os.RemoveAll(t.dir); err != nil {
			return fmt.Errorf("%w: failed to remove %q: %s", ErrCleanup, t.dir, err.Error())
		}

		return nil
	}

	entries, err := os.ReadDir(t.dir)
	if err != nil {
		return fmt.Errorf("%w: failed to list %q: %s", ErrCleanup, t.dir, err.Error())
	}

	var errs []error

	for _, entry := range entries {
		if t.keep[entry.Name()] {
			continue
		}

		if err = os.RemoveAll(filepath.Join(t.dir, entry.Name())); err != nil {
			errs = append(errs, fmt.Errorf("%w: failed to remove %q: %s", ErrCleanup, entry.Name(), err.Error()))
		}
	}

	return errors.Join(errs...)
}

func (g *Generator) templateFS() (fs.FS, error) {
	if g.opts.Templates != nil {
		return g.opts.Templates, nil
	}

	src := g.opts.Config.Source

	if src.URL != "" {
		return nil, fmt.Errorf("%w: remote templates (%s) are not supported yet", ErrNotImplemented, src.URL)
	}

	if src.Path == "" {
		return Bundled()
	}

	info, err := os.Stat(src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open template directory %q: %s", ErrTemplateNotFound, src.Path, err.Error())
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrTemplateNotFound, src.Path)
	}

	return os.DirFS(src.Path), nil
}

// plannedEntries lists the top-level names the templates will write into the project directory.
func (g *Generator) plannedEntries(fsys fs.FS) map[string]bool {
	planned := map[string]bool{"src": true}

	for _, root := range []string{"base", g.opts.Config.Transport.String()} {
		items, err := fs.ReadDir(fsys, root)
		if err != nil {
			continue
		}

		for _, item := range items {
			planned[strings.TrimSuffix(item.Name(), TmpltExt)] = true
		}
	}

	return planned
}

// prepareTarget makes sure dir exists and may be written to.
// A directory holding only hidden entries is reused as long as none of them is in planned.
// Non-nil returned error wraps [ErrOverwriteDeclined] or [ErrTargetExists] when dir is occupied.
func (g *Generator) prepareTarget(dir string, planned map[string]bool) (*target, error) {
	_, err := os.Lstat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if err = os.Mkdir(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create project directory %q: %w", dir, err)
		}

		return &target{dir: dir, created: true}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat project directory %q: %w", dir, err)
	}

	available, err := validate.IsDirectoryAvailable(dir)
	if err != nil {
		return nil, err
	}

	if available {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list project directory %q: %w", dir, err)
		}

		keep := make(map[string]bool, len(entries))
		clash := ""

		for _, entry := range entries {
			keep[entry.Name()] = true

			if planned[entry.Name()] && clash == "" {
				clash = entry.Name()
			}
		}

		if clash == "" {
			g.opts.Logger.Debug("reusing empty directory", "path", dir)

			return &target{dir: dir, keep: keep}, nil
		}

		g.opts.Logger.Debug("existing entry would be overwritten", "path", dir, "entry", clash)
	}

	if g.opts.Confirmer == nil {
		return nil, fmt.Errorf("%w: %q", ErrTargetExists, dir)
	}

	ok, err := g.opts.Confirmer.ConfirmOverwrite(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm overwriting %q: %w", dir, err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %q was left untouched", ErrOverwriteDeclined, dir)
	}

	if err = os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("failed to remove existing %q: %w", dir, err)
	}

	if err = os.Mkdir(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create project directory %q: %w", dir, err)
	}

	return &target{dir: dir, created: true}, nil
}

func (g *Generator) compose(fsys fs.FS, dir string) ([]string, error) {
	cfg := g.opts.Config
	src := filepath.Join(dir, "src")

	steps := []composeStep{
		{root: "base", dest: dir},
		{root: cfg.Transport.String(), dest: dir},
		{root: "shared", dest: src},
	}

	if cfg.IncludeExamples {
		steps = append(steps, composeStep{root: "examples", dest: filepath.Join(src, "examples")})
	}

	var files []string

	for _, step := range steps {
		if err := os.MkdirAll(step.dest, 0750); err != nil {
			return files, fmt.Errorf("failed to create directory %q: %w", step.dest, err)
		}

		written, err := g.composer.Compose(fsys, step.root, step.dest)
		if err != nil {
			return files, fmt.Errorf("failed to apply the %q templates: %w", step.root, err)
		}

		for _, w := range written {
			rel, err := filepath.Rel(dir, filepath.Join(step.dest, filepath.FromSlash(w)))
			if err != nil {
				return files, err
			}

			files = append(files, filepath.ToSlash(rel))
		}

		g.opts.Logger.Debug("applied templates", "templates", step.root, "files", len(written))
	}

	return files, nil
}

func (g *Generator) run(ctx context.Context, dir, what string, name string, args ...string) error {
	c := Command{Name: name, Args: args, Dir: dir}

	g.opts.Logger.Info("Running "+c.String(), "dir", dir)

	res, err := runChecked(ctx, g.opts.Runner, c)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}

	g.opts.Logger.Debug("command finished", "command", c.String(), "output", string(res.Output))

	return nil
}

// Generate creates the project described by the configuration under the working directory.
// On failure everything it wrote is removed again. A failed cleanup is joined to the returned error and wraps [ErrCleanup].
func (g *Generator) Generate(ctx context.Context) (res *Result, err error) {
	cfg := g.opts.Config

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	fsys, err := g.templateFS()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(g.opts.WorkDir, cfg.Name)

	g.opts.Logger.Info("Generating project", "path", dir, "transport", cfg.Transport)

	t, err := g.prepareTarget(dir, g.plannedEntries(fsys))
	if err != nil {
		return nil, err
	}

	defer func() {
		if err == nil {
			return
		}

		g.opts.Logger.Debug("cleaning up after failure", "path", dir)

		if cerr := t.cleanup(); cerr != nil {
			err = errors.Join(err, cerr)
		}

		res = nil
	}()

	files, err := g.compose(fsys, dir)
	if err != nil {
		return nil, err
	}

	if cfg.InitializeGit {
		if err = g.run(ctx, dir, "initialize a Git repository", "git", "init"); err != nil {
			return nil, err
		}
	}

	if cfg.InstallDependencies {
		if err = g.run(ctx, dir, "install dependencies", "npm", "install"); err != nil {
			return nil, err
		}
	}

	res = &Result{TargetDir: dir, Files: files}

	report := struct {
		Name      string
		TargetDir string
		Installed bool
	}{Name: cfg.Name, TargetDir: dir, Installed: cfg.InstallDependencies}

	if werr := nextStepsTmplt.Execute(g.opts.Out, report); werr != nil {
		g.opts.Logger.Info("failed to print next steps", "err", werr)
	}

	return res, nil
}
