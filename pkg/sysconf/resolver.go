// Package sysconf resolves the layered configuration shared by the dockit
// toolkits: a per-system global dotfile under the user's home directory,
// overridden by a project-local file found via version-control root
// discovery, deep-merged into a single mapping.
package sysconf

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/tsellens/dockit/pkg/systype"
)

// Resolver performs config resolution against a filesystem. The zero value
// is not usable; construct with NewResolver.
type Resolver struct {
	fs      afero.Fs
	homeDir string
	workDir string
}

// Option is a functional option for configuring a Resolver.
type Option func(*Resolver)

// WithFS sets the filesystem used for all reads. Defaults to the OS
// filesystem; tests substitute an in-memory one.
func WithFS(fsys afero.Fs) Option {
	return func(r *Resolver) { r.fs = fsys }
}

// WithHomeDir overrides the user's home directory.
func WithHomeDir(dir string) Option {
	return func(r *Resolver) { r.homeDir = dir }
}

// WithWorkDir overrides the starting directory for project-root discovery.
func WithWorkDir(dir string) Option {
	return func(r *Resolver) { r.workDir = dir }
}

// NewResolver creates a Resolver, defaulting to the OS filesystem, the
// current user's home directory, and the process working directory.
func NewResolver(opts ...Option) (*Resolver, error) {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.homeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		r.homeDir = home
	}
	if r.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		r.workDir = wd
	}
	return r, nil
}

// Sources records where each config layer was loaded from. An empty string
// means the corresponding file was absent.
type Sources struct {
	Global  string
	Project string
}

// Result is the outcome of one config resolution. It is created once per
// invocation and not mutated afterwards.
type Result struct {
	Config      map[string]any
	System      systype.System
	ProjectRoot string
	Sources     Sources

	homeDir string
}

// ResolveOption adjusts a single Resolve call.
type ResolveOption func(*resolveParams)

type resolveParams struct {
	projectRoot string
}

// WithProjectRoot skips discovery and uses dir as the project root.
func WithProjectRoot(dir string) ResolveOption {
	return func(p *resolveParams) { p.projectRoot = dir }
}

// Resolve loads and merges the global and project config for the given
// system type. Absent files are treated as empty mappings; a malformed file
// aborts the whole resolution with a *ParseError.
func (r *Resolver) Resolve(sys systype.System, opts ...ResolveOption) (*Result, error) {
	var params resolveParams
	for _, opt := range opts {
		opt(&params)
	}

	root := params.projectRoot
	if root == "" {
		if found, ok := FindProjectRoot(r.fs, r.workDir); ok {
			root = found
		} else {
			root = r.workDir
		}
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	paths := systype.Paths(sys)

	globalPath := filepath.Join(r.homeDir, paths.GlobalConfigName)
	global, globalOK, err := loadFile(r.fs, globalPath)
	if err != nil {
		return nil, err
	}

	projectPath := filepath.Join(root, paths.ProjectConfigName)
	project, projectOK, err := loadFile(r.fs, projectPath)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Config:      Merge(global, project),
		System:      sys,
		ProjectRoot: root,
		homeDir:     r.homeDir,
	}
	if globalOK {
		res.Sources.Global = globalPath
	}
	if projectOK {
		res.Sources.Project = projectPath
	}
	return res, nil
}

// loadFile reads and parses one YAML config file. A missing file is not an
// error: it returns (nil, false, nil). A file that exists but fails to parse
// returns a *ParseError.
func loadFile(fsys afero.Fs, path string) (map[string]any, bool, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, false, &ParseError{Path: path, Err: err}
	}
	return m, true, nil
}
