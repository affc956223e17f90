// Package cli wires the command line, the prompter and the generator together.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/viniciuscsouza/create-mcp-server/config"
	"github.com/viniciuscsouza/create-mcp-server/output"
	"github.com/viniciuscsouza/create-mcp-server/prompt"
	"github.com/viniciuscsouza/create-mcp-server/scaffold"
	"github.com/viniciuscsouza/create-mcp-server/validate"
	"github.com/viniciuscsouza/create-mcp-server/version"
)

type (
	// Prompter completes the settings the flags left out and confirms overwrites.
	Prompter interface {
		Complete(scaffold.PartialConfig, scaffold.Defaults) (scaffold.PartialConfig, error)
		scaffold.Confirmer
	}

	CreateCmd struct {
		runner           scaffold.Runner
		prompter         Prompter
		out              io.Writer
		errOut           io.Writer
		workDir          string
		Name             string             `arg:"" optional:"" help:"Project name, also used as the directory name."`
		Description      string             `short:"d" help:"Project description."`
		Transport        scaffold.Transport `short:"t" placeholder:"stdio|http" help:"Transport the server communicates over."`
		Template         string             `type:"path" xor:"source" placeholder:"PATH" help:"Local template directory to use instead of the bundled one."`
		TemplateURL      string             `name:"template-url" xor:"source" placeholder:"URL" help:"Remote template repository (not supported yet)."`
		Config           string             `type:"path" placeholder:"FILE" help:"Defaults file (TOML or YAML). Defaults to the user config directory."`
		Version          kong.VersionFlag   `help:"Print version and exit."`
		NoExamples       bool               `name:"no-examples" help:"Do not include example tools, resources and prompts."`
		NoGit            bool               `name:"no-git" help:"Do not initialize a Git repository."`
		NoInstall        bool               `name:"no-install" help:"Do not install dependencies."`
		Yes              bool               `short:"y" help:"Accept defaults for everything not given and skip all prompts."`
		Verbose          bool               `short:"v" help:"Print debug output."`
		SkipRuntimeCheck bool               `name:"skip-runtime-check" help:"Do not check the installed Node.js version."`
	}
)

// Validate rejects an invalid project name before anything touches the filesystem.
func (c *CreateCmd) Validate() error {
	if c.Name != "" && !validate.IsValidName(c.Name) {
		return fmt.Errorf("invalid project name %q: use lowercase letters, digits, '-', '_', '.' or '~'", c.Name)
	}

	return nil
}

func (c *CreateCmd) AfterApply() (err error) {
	c.workDir, err = os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	return nil
}

func (c *CreateCmd) setDefaults() {
	if c.runner == nil {
		c.runner = scaffold.ExecRunner{}
	}

	if c.out == nil {
		c.out = os.Stdout
	}

	if c.errOut == nil {
		c.errOut = os.Stderr
	}

	if c.prompter == nil {
		c.prompter = prompt.New(os.Stdin, c.errOut)
	}
}

func negated(flag bool) *bool {
	if !flag {
		return nil
	}

	v := false

	return &v
}

func (c *CreateCmd) partial() scaffold.PartialConfig {
	return scaffold.PartialConfig{
		Name:                c.Name,
		Description:         c.Description,
		Transport:           c.Transport,
		Source:              scaffold.TemplateSource{Path: c.Template, URL: c.TemplateURL},
		IncludeExamples:     negated(c.NoExamples),
		InitializeGit:       negated(c.NoGit),
		InstallDependencies: negated(c.NoInstall),
	}
}

func cancelled(err error) bool {
	return errors.Is(err, scaffold.ErrOverwriteDeclined) || errors.Is(err, prompt.ErrAborted)
}

func (c *CreateCmd) Run(info version.Info) error {
	c.setDefaults()

	output.SetupLogging(c.errOut, c.Verbose)

	ctx := context.Background()

	if !c.SkipRuntimeCheck {
		v, err := scaffold.CheckRuntime(ctx, c.runner)
		if err != nil {
			return err
		}

		output.Debug("Node.js runtime found", "version", v)
	}

	output.Banner(c.out, info)

	defaults, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	var (
		partial   = c.partial()
		confirmer scaffold.Confirmer
	)

	if c.Yes {
		partial = partial.Fill(defaults)
	} else {
		partial, err = c.prompter.Complete(partial, defaults)
		if cancelled(err) {
			output.Warn("Operation cancelled")

			return nil
		}

		if err != nil {
			return err
		}

		confirmer = c.prompter
	}

	cfg, err := partial.Resolve()
	if err != nil {
		return err
	}

	output.Dump("Resolved configuration", cfg)

	gen := scaffold.NewGenerator(scaffold.GenerateOptions{
		Runner:    c.runner,
		Confirmer: confirmer,
		Logger:    output.Logger,
		Out:       c.out,
		WorkDir:   c.workDir,
		Config:    cfg,
	})

	res, err := gen.Generate(ctx)
	if cancelled(err) {
		output.Warn("Operation cancelled, nothing was changed", "path", cfg.Name)

		return nil
	}

	if err != nil {
		return err
	}

	output.Success(c.out, fmt.Sprintf("%d files written. Happy hacking!", len(res.Files)))

	return nil
}
