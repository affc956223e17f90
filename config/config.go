// Package config loads the optional file holding the user's preferred answers.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/viniciuscsouza/create-mcp-server/scaffold"
)

type File struct {
	IncludeExamples     *bool  `toml:"include_examples" yaml:"include_examples"`
	InitializeGit       *bool  `toml:"initialize_git" yaml:"initialize_git"`
	InstallDependencies *bool  `toml:"install_dependencies" yaml:"install_dependencies"`
	Description         string `toml:"description" yaml:"description"`
	Transport           string `toml:"transport" yaml:"transport"`
	TemplatePath        string `toml:"template_path" yaml:"template_path"`
}

const dirName = "create-mcp-server"

var (
	ErrConfig = errors.New("invalid configuration file")

	fileNames = []string{"config.toml", "config.yaml", "config.yml"}

	userConfigDir = os.UserConfigDir
)

// DefaultPath returns the first existing config file in the user's configuration directory,
// or an empty string when there is none.
func DefaultPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", nil
	}

	for _, name := range fileNames {
		p := filepath.Join(dir, dirName, name)

		_, err = os.Stat(p)
		if err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to stat config file %q: %w", p, err)
		}
	}

	return "", nil
}

func decode(path string, f *File) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, f)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrConfig, err.Error())
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%w: unknown key %q in %q", ErrConfig, undecoded[0].String(), path)
		}

		return nil
	case ".yaml", ".yml":
		contents, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("failed to read config file %q: %w", path, err)
		}

		if err = yaml.UnmarshalWithOptions(contents, f, yaml.Strict()); err != nil {
			return fmt.Errorf("%w: %s", ErrConfig, err.Error())
		}

		return nil
	default:
		return fmt.Errorf("%w: unsupported extension %q, use .toml, .yaml or .yml", ErrConfig, ext)
	}
}

// Load reads the file at path on top of [scaffold.DefaultValues].
// An empty path means the default location, where a missing file is fine.
// Non-nil returned error wraps [ErrConfig] when the file contents are invalid.
func Load(path string) (scaffold.Defaults, error) {
	d := scaffold.DefaultValues()

	if path == "" {
		var err error

		if path, err = DefaultPath(); err != nil || path == "" {
			return d, err
		}
	}

	var f File

	if err := decode(path, &f); err != nil {
		return d, err
	}

	return f.apply(d, filepath.Dir(path))
}

func (f File) apply(d scaffold.Defaults, baseDir string) (scaffold.Defaults, error) {
	if f.Description != "" {
		d.Description = f.Description
	}

	if f.Transport != "" {
		if err := d.Transport.UnmarshalText([]byte(f.Transport)); err != nil {
			return d, fmt.Errorf("%w: %s", ErrConfig, err.Error())
		}
	}

	if f.TemplatePath != "" {
		d.TemplatePath = f.TemplatePath

		if !filepath.IsAbs(d.TemplatePath) {
			d.TemplatePath = filepath.Join(baseDir, d.TemplatePath)
		}
	}

	if f.IncludeExamples != nil {
		d.IncludeExamples = *f.IncludeExamples
	}

	if f.InitializeGit != nil {
		d.InitializeGit = *f.InitializeGit
	}

	if f.InstallDependencies != nil {
		d.InstallDependencies = *f.InstallDependencies
	}

	return d, nil
}
