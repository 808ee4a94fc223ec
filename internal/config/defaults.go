package config

// applyDefaults fills unset fields with workable values so a minimal
// configuration file still produces a complete resolved configuration.
func (c *Config) applyDefaults() {
	if c.Project.Title == "" {
		c.Project.Title = "Documentation"
	}
	if c.Project.PathToDocs == "" {
		c.Project.PathToDocs = "docs"
	}
	if c.Theme.Name == "" {
		c.Theme.Name = "book"
	}
	if c.Theme.ShowTocLevel == 0 {
		c.Theme.ShowTocLevel = 2
	}
	if c.Theme.LaunchButtons.NotebookInterface == "" {
		c.Theme.LaunchButtons.NotebookInterface = "jupyterlab"
	}
	if c.Execution.KernelManifest == "" {
		c.Execution.KernelManifest = "InstallIJulia.jl"
	}
	if c.Linkcheck.MaxConcurrent == 0 {
		c.Linkcheck.MaxConcurrent = 10
	}
	if c.Linkcheck.RequestTimeout == "" {
		c.Linkcheck.RequestTimeout = "10s"
	}
	if c.Linkcheck.RateLimitDelay == "" {
		c.Linkcheck.RateLimitDelay = "100ms"
	}
	if c.Linkcheck.MaxRedirects == 0 {
		c.Linkcheck.MaxRedirects = 5
	}
	if c.Linkcheck.CacheTTL == "" {
		c.Linkcheck.CacheTTL = "168h" // one week
	}
	if c.Reports.Dir == "" {
		c.Reports.Dir = "docs/report"
	}
	if c.Reports.Index == "" {
		c.Reports.Index = "docs/report.md"
	}
	if c.Myst.HeadingAnchors == 0 {
		c.Myst.HeadingAnchors = 4
	}
}
