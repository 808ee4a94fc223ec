// Package site assembles the resolved renderer configuration from the
// configuration file, the environment, and the repository state. The output
// is what the external documentation renderer consumes.
package site

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ComPWA/compwa-org/internal/config"
	"github.com/ComPWA/compwa-org/internal/execution"
	"github.com/ComPWA/compwa-org/internal/gitmeta"
	"github.com/ComPWA/compwa-org/internal/intersphinx"
)

// Resolved is the fully computed build configuration. All environment
// branching has been evaluated; the renderer consumes this as plain data.
type Resolved struct {
	Project       config.ProjectConfig `yaml:"project"`
	RepositoryURL string               `yaml:"repository_url"`
	// Branch is the commit SHA (or branch name) generated links point at.
	Branch     string `yaml:"branch"`
	BinderLink string `yaml:"binder_link"`

	Theme    config.ThemeConfig    `yaml:"theme"`
	Comments config.CommentsConfig `yaml:"comments"`

	ExecutionMode      execution.Mode                `yaml:"execution_mode"`
	ExecutionExclude   []string                      `yaml:"execution_exclude"`
	ExecutionTimeout   int                           `yaml:"execution_timeout_seconds"`
	ShowTraceback      bool                          `yaml:"execution_show_traceback"`
	RemoveStderr       bool                          `yaml:"execution_remove_stderr"`
	ExcludePatterns    []string                      `yaml:"exclude_patterns"`
	RemoveFromToctrees []string                      `yaml:"remove_from_toctrees"`
	MystExtensions     []string                      `yaml:"myst_extensions"`
	MystHeadingAnchors int                           `yaml:"myst_heading_anchors"`
	MystUpdateMathjax  bool                          `yaml:"myst_update_mathjax"`
	MystSubstitutions  map[string]string             `yaml:"myst_substitutions"`
	Intersphinx        map[string]intersphinx.Target `yaml:"intersphinx"`
	IntersphinxRemap   intersphinx.VersionRemapping  `yaml:"intersphinx_remap,omitempty"`
	LinkcheckIgnore    []string                      `yaml:"linkcheck_ignore"`
	LinkcheckAnchors   bool                          `yaml:"linkcheck_anchors"`
	RendererOptions    map[string]any                `yaml:"renderer_options,omitempty"`
}

// Resolver computes the Resolved configuration.
type Resolver struct {
	cfg      *config.Config
	env      execution.Env
	repoRoot string
}

// NewResolver creates a resolver rooted at repoRoot (used for commit
// resolution and to locate the pins file).
func NewResolver(cfg *config.Config, env execution.Env, repoRoot string) *Resolver {
	return &Resolver{cfg: cfg, env: env, repoRoot: repoRoot}
}

// Resolve evaluates every environment-dependent branch once and returns the
// final configuration.
func (r *Resolver) Resolve() (*Resolved, error) {
	cfg := r.cfg

	mapping, err := r.resolveIntersphinx()
	if err != nil {
		return nil, err
	}

	mode := execution.ResolveMode(r.env)
	excluded := execution.ExclusionPatterns(cfg.Execution.Exclude, cfg.Execution.JuliaExclude, r.env)

	branch := gitmeta.CommitSHA(r.repoRoot)
	binderLink := fmt.Sprintf("https://mybinder.org/v2/gh/%s/%s/%s?filepath=%s",
		cfg.Project.Organization, cfg.Project.Repository, branch,
		strings.TrimSuffix(cfg.Project.PathToDocs, "/")+"/usage")

	return &Resolved{
		Project:            cfg.Project,
		RepositoryURL:      cfg.Project.RepositoryURL(),
		Branch:             branch,
		BinderLink:         binderLink,
		Theme:              cfg.Theme,
		Comments:           cfg.Comments,
		ExecutionMode:      mode,
		ExecutionExclude:   excluded,
		ExecutionTimeout:   cfg.Execution.TimeoutSeconds,
		ShowTraceback:      cfg.Execution.ShowTraceback,
		RemoveStderr:       cfg.Execution.RemoveStderr,
		ExcludePatterns:    cfg.ExcludePatterns,
		RemoveFromToctrees: cfg.RemoveFromToctrees,
		MystExtensions:     cfg.Myst.EnableExtensions,
		MystHeadingAnchors: cfg.Myst.HeadingAnchors,
		MystUpdateMathjax:  cfg.Myst.UpdateMathjax,
		MystSubstitutions:  r.substitutions(mode, branch, binderLink),
		Intersphinx:        mapping,
		IntersphinxRemap:   cfg.IntersphinxRemap,
		LinkcheckIgnore:    cfg.Linkcheck.Ignore,
		LinkcheckAnchors:   cfg.Linkcheck.Anchors,
		RendererOptions:    cfg.RendererOptions,
	}, nil
}

// resolveIntersphinx expands version placeholders from the pins file. With
// no pins file configured, the mapping must not contain placeholders.
func (r *Resolver) resolveIntersphinx() (map[string]intersphinx.Target, error) {
	var pins *intersphinx.PinSet
	if r.cfg.PinsFile != "" {
		path := r.cfg.PinsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.repoRoot, path)
		}
		var err error
		pins, err = intersphinx.LoadPins(path)
		if err != nil {
			return nil, fmt.Errorf("load version pins: %w", err)
		}
	}
	mapping, err := intersphinx.Resolve(r.cfg.Intersphinx, pins)
	if err != nil {
		return nil, fmt.Errorf("resolve intersphinx mapping: %w", err)
	}
	return mapping, nil
}

// substitutions merges the configured substitutions with the computed ones.
// Execution-gated substitutions collapse to "" when execution is off, so
// templates referencing them render nothing instead of failing.
func (r *Resolver) substitutions(mode execution.Mode, branch, binderLink string) map[string]string {
	subs := make(map[string]string, len(r.cfg.Myst.Substitutions)+len(r.cfg.Myst.ExecutionSubstitutions)+1)
	expand := strings.NewReplacer("{branch}", branch, "{binder_link}", binderLink)
	for name, value := range r.cfg.Myst.Substitutions {
		subs[name] = expand.Replace(value)
	}
	for name, value := range r.cfg.Myst.ExecutionSubstitutions {
		if mode == execution.ModeOff {
			subs[name] = ""
		} else {
			subs[name] = expand.Replace(value)
		}
	}
	subs["branch"] = branch
	return subs
}

// WriteYAML emits the resolved configuration.
func (res *Resolved) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode resolved configuration: %w", err)
	}
	return enc.Close()
}
