// Package config loads and validates the docsite configuration file that
// drives the resolved renderer configuration: project identity, theme
// options, notebook execution, intersphinx mappings and link checking.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ComPWA/compwa-org/internal/intersphinx"
)

// Config is the top-level configuration file structure.
type Config struct {
	Project     ProjectConfig                 `yaml:"project"`
	Theme       ThemeConfig                   `yaml:"theme"`
	Comments    CommentsConfig                `yaml:"comments"`
	Execution   ExecutionConfig               `yaml:"execution"`
	Myst        MystConfig                    `yaml:"myst"`
	Intersphinx map[string]intersphinx.Target `yaml:"intersphinx"`
	// IntersphinxRemap redirects published package versions without a
	// deployed inventory to a known-good documentation version.
	IntersphinxRemap intersphinx.VersionRemapping `yaml:"intersphinx_remap"`
	Linkcheck        LinkcheckConfig              `yaml:"linkcheck"`
	Reports          ReportsConfig                `yaml:"reports"`
	// PinsFile is the pip constraints file that package versions are
	// pinned from when expanding intersphinx URL placeholders.
	PinsFile string `yaml:"pins_file"`
	// ExcludePatterns are source files never handed to the renderer.
	ExcludePatterns []string `yaml:"exclude_patterns"`
	// RemoveFromToctrees keeps bulky page collections out of the sidebar.
	RemoveFromToctrees []string `yaml:"remove_from_toctrees"`
	// RendererOptions are passed through to the renderer verbatim, for
	// settings the resolver has no opinion about.
	RendererOptions map[string]any `yaml:"renderer_options"`
}

// ProjectConfig identifies the documented project.
type ProjectConfig struct {
	Organization string `yaml:"organization"`
	Repository   string `yaml:"repository"`
	Title        string `yaml:"title"`
	SiteTitle    string `yaml:"site_title"`
	Copyright    string `yaml:"copyright"`
	// PathToDocs is the documentation root relative to the repository.
	PathToDocs string `yaml:"path_to_docs"`
}

// RepositoryURL returns the canonical repository URL on GitHub.
func (p ProjectConfig) RepositoryURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", p.Organization, p.Repository)
}

// ThemeConfig holds the book-theme options passed through to the renderer.
type ThemeConfig struct {
	Name            string         `yaml:"name"`
	LogoURL         string         `yaml:"logo_url"`
	LogoText        string         `yaml:"logo_text"`
	Favicon         string         `yaml:"favicon"`
	ShowTocLevel    int            `yaml:"show_toc_level"`
	IconLinks       []IconLink     `yaml:"icon_links"`
	LaunchButtons   LaunchButtons  `yaml:"launch_buttons"`
	CSSFiles        []string       `yaml:"css_files"`
	JSFiles         []string       `yaml:"js_files"`
	StaticPath      []string       `yaml:"static_path"`
	ExtraOptions    map[string]any `yaml:"extra_options"`
	UseEditButton   bool           `yaml:"use_edit_page_button"`
	UseIssuesButton bool           `yaml:"use_issues_button"`
	UseRepoButton   bool           `yaml:"use_repository_button"`
}

// IconLink is one entry in the theme's icon link bar.
type IconLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`
	Type string `yaml:"type,omitempty"`
}

// LaunchButtons configures the interactive-notebook launch services.
type LaunchButtons struct {
	BinderHubURL      string `yaml:"binderhub_url"`
	ColabURL          string `yaml:"colab_url"`
	DeepnoteURL       string `yaml:"deepnote_url"`
	NotebookInterface string `yaml:"notebook_interface"`
	Thebe             bool   `yaml:"thebe"`
}

// CommentsConfig enables the page comment integrations.
type CommentsConfig struct {
	Hypothesis bool   `yaml:"hypothesis"`
	Utterances string `yaml:"utterances_label"`
}

// ExecutionConfig controls notebook execution.
type ExecutionConfig struct {
	// Exclude patterns are always skipped during execution.
	Exclude []string `yaml:"exclude"`
	// JuliaExclude patterns are skipped when no Julia toolchain is
	// available (interpreter missing, or hosted build).
	JuliaExclude []string `yaml:"julia_exclude"`
	// KernelManifest is the Julia script installing the IJulia kernel.
	KernelManifest string `yaml:"kernel_manifest"`
	// TimeoutSeconds per notebook; <= 0 disables the timeout.
	TimeoutSeconds int  `yaml:"timeout_seconds"`
	ShowTraceback  bool `yaml:"show_traceback"`
	RemoveStderr   bool `yaml:"remove_stderr"`
}

// MystConfig passes MyST parser options through to the renderer.
type MystConfig struct {
	EnableExtensions []string          `yaml:"enable_extensions"`
	HeadingAnchors   int               `yaml:"heading_anchors"`
	Substitutions    map[string]string `yaml:"substitutions"`
	// ExecutionSubstitutions are only rendered when notebook execution is
	// enabled; with execution off they resolve to the empty string.
	ExecutionSubstitutions map[string]string `yaml:"execution_substitutions"`
	UpdateMathjax          bool              `yaml:"update_mathjax"`
}

// LinkcheckConfig controls link verification.
type LinkcheckConfig struct {
	Ignore         []string `yaml:"ignore"`
	Anchors        bool     `yaml:"anchors"`
	MaxConcurrent  int      `yaml:"max_concurrent"`
	RequestTimeout string   `yaml:"request_timeout"`
	RateLimitDelay string   `yaml:"rate_limit_delay"`
	MaxRedirects   int      `yaml:"max_redirects"`
	CachePath      string   `yaml:"cache_path"`
	CacheTTL       string   `yaml:"cache_ttl"`
}

// ReportsConfig controls technical-report index generation.
type ReportsConfig struct {
	Dir   string `yaml:"dir"`
	Index string `yaml:"index"`
}

// Load reads and validates the configuration file. A .env file in the
// working directory is loaded first (never overriding the process
// environment), then environment references in the YAML are expanded.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.IntersphinxRemap = cfg.IntersphinxRemap.Normalize()
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Project.Organization == "" {
		return fmt.Errorf("project.organization is required")
	}
	if c.Project.Repository == "" {
		return fmt.Errorf("project.repository is required")
	}
	for name, target := range c.Intersphinx {
		if target.URL == "" {
			return fmt.Errorf("intersphinx target %q has no url", name)
		}
	}
	return nil
}

// loadEnvFile loads .env then .env.local, stopping at the first file that
// parses. Absence is a normal condition.
func loadEnvFile() {
	for _, path := range []string{".env", ".env.local"} {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded environment variables", "file", path)
			return
		}
	}
}
