package scaffold

import (
	"fmt"
	"strings"

	"github.com/viniciuscsouza/create-mcp-server/validate"
)

type (
	Transport string

	TemplateSource struct {
		// Path is a local directory holding the base, stdio, http and shared subtrees.
		Path string
		// URL points to a remote template collection. Not supported yet.
		URL string
	}

	ProjectConfig struct {
		Name                string
		Description         string
		Transport           Transport
		Source              TemplateSource
		IncludeExamples     bool
		InitializeGit       bool
		InstallDependencies bool
	}

	// PartialConfig is what the command line produced before prompting.
	// Empty strings and nil pointers mark the fields still to be asked for.
	PartialConfig struct {
		Name                string
		Description         string
		Transport           Transport
		Source              TemplateSource
		IncludeExamples     *bool
		InitializeGit       *bool
		InstallDependencies *bool
	}

	Defaults struct {
		Name                string
		Description         string
		Transport           Transport
		TemplatePath        string
		IncludeExamples     bool
		InitializeGit       bool
		InstallDependencies bool
	}
)

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

func Transports() []Transport {
	return []Transport{TransportStdio, TransportHTTP}
}

func (t *Transport) UnmarshalText(text []byte) error {
	v := Transport(strings.ToLower(strings.TrimSpace(string(text))))

	if !v.Valid() {
		return fmt.Errorf(`%q is not a supported transport, use "stdio" or "http"`, string(text))
	}

	*t = v

	return nil
}

func (t Transport) Valid() bool {
	return t == TransportStdio || t == TransportHTTP
}

func (t Transport) String() string {
	return string(t)
}

func DefaultValues() Defaults {
	return Defaults{
		Name:                "my-mcp-server",
		Description:         "A custom MCP server",
		Transport:           TransportStdio,
		IncludeExamples:     true,
		InitializeGit:       true,
		InstallDependencies: true,
	}
}

// Non-nil returned error wraps [ErrInvalidConfig].
func (c ProjectConfig) Validate() error {
	if !validate.IsValidName(c.Name) {
		return fmt.Errorf("%w: %q is not a valid project name, use lowercase letters, digits, '-', '_', '.' or '~' and do not start with '.', '_' or '-'", ErrInvalidConfig, c.Name)
	}

	if !c.Transport.Valid() {
		return fmt.Errorf("%w: unsupported transport %q", ErrInvalidConfig, c.Transport)
	}

	if c.Source.Path != "" && c.Source.URL != "" {
		return fmt.Errorf("%w: a template path and a template URL cannot be used together", ErrInvalidConfig)
	}

	return nil
}

func boolOr(v *bool, fallback bool) *bool {
	if v != nil {
		return v
	}

	return &fallback
}

// Fill sets every field that is still unset from d.
func (p PartialConfig) Fill(d Defaults) PartialConfig {
	if p.Name == "" {
		p.Name = d.Name
	}

	if p.Description == "" {
		p.Description = d.Description
	}

	if p.Transport == "" {
		p.Transport = d.Transport
	}

	if p.Source.Path == "" && p.Source.URL == "" {
		p.Source.Path = d.TemplatePath
	}

	p.IncludeExamples = boolOr(p.IncludeExamples, d.IncludeExamples)
	p.InitializeGit = boolOr(p.InitializeGit, d.InitializeGit)
	p.InstallDependencies = boolOr(p.InstallDependencies, d.InstallDependencies)

	return p
}

// Complete reports whether nothing is left to ask for.
func (p PartialConfig) Complete() bool {
	return p.Name != "" && p.Description != "" && p.Transport != "" &&
		p.IncludeExamples != nil && p.InitializeGit != nil && p.InstallDependencies != nil
}

// Resolve turns p into a validated configuration.
// Non-nil returned error wraps [ErrInvalidConfig].
func (p PartialConfig) Resolve() (ProjectConfig, error) {
	if !p.Complete() {
		return ProjectConfig{}, fmt.Errorf("%w: configuration still has unset fields", ErrInvalidConfig)
	}

	cfg := ProjectConfig{
		Name:                p.Name,
		Description:         p.Description,
		Transport:           p.Transport,
		Source:              p.Source,
		IncludeExamples:     *p.IncludeExamples,
		InitializeGit:       *p.InitializeGit,
		InstallDependencies: *p.InstallDependencies,
	}

	if err := cfg.Validate(); err != nil {
		return ProjectConfig{}, err
	}

	return cfg, nil
}
