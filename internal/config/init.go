package config

import (
	"fmt"
	"os"
)

// Init writes the starter configuration file. Refuses to overwrite an
// existing file unless force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write configuration file: %w", err)
	}
	return nil
}

// starterConfig is the configuration of the ComPWA organization site, which
// doubles as a full example of every supported option.
const starterConfig = `project:
  organization: ComPWA
  repository: compwa.github.io
  title: ComPWA Organization
  site_title: Common Partial Wave Analysis Project
  copyright: "2020, ComPWA"
  path_to_docs: docs

theme:
  name: book
  logo_url: https://raw.githubusercontent.com/ComPWA/ComPWA/04e5199/doc/images/logo.svg
  logo_text: The ComPWA project
  favicon: _static/favicon.ico
  show_toc_level: 2
  use_edit_page_button: true
  use_issues_button: true
  use_repository_button: true
  icon_links:
    - name: GitHub
      url: https://github.com/ComPWA
      icon: fa-brands fa-github
    - name: Zenodo
      url: https://doi.org/10.5281/zenodo.6908149
      icon: https://zenodo.org/badge/DOI/10.5281/zenodo.6908149.svg
      type: url
  launch_buttons:
    binderhub_url: https://mybinder.org
    colab_url: https://colab.research.google.com
    deepnote_url: https://deepnote.com
    notebook_interface: jupyterlab
    thebe: true
  css_files:
    - https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.1.1/css/all.min.css
  js_files:
    - https://cdn.datatables.net/1.13.6/js/jquery.dataTables.min.js
    - https://cdnjs.cloudflare.com/ajax/libs/require.js/2.3.4/require.min.js
  static_path:
    - _static

comments:
  hypothesis: true
  utterances_label: "📝 Docs"

exclude_patterns:
  - "**.ipynb_checkpoints"
  - "*build"
  - "*template.md"
  - adr/template.md
  - tests

remove_from_toctrees:
  - adr/*
  - report/*

execution:
  timeout_seconds: -1
  show_traceback: true
  remove_stderr: true
  kernel_manifest: InstallIJulia.jl
  exclude:
    - adr/001/*
    - adr/002/*
    - report/000*
    - report/001*
    - report/002*
    - report/005*
    - report/008*
    - report/009*
    - report/010*
    - report/011*
    - report/012*
    - report/013*
    - report/014*
    - report/015*
    - report/017*
    - report/018*
    - report/020*
    - report/021*
    - report/022*
    - report/033*
  julia_exclude:
    - report/019*

myst:
  heading_anchors: 4
  update_mathjax: false
  enable_extensions:
    - amsmath
    - colon_fence
    - dollarmath
    - smartquotes
    - substitution
  substitutions:
    run_interactive: |
      :::{margin}
      Run this notebook [on Binder]({binder_link}) or
      {ref}` + "`" + `locally on Jupyter Lab <develop:Jupyter Notebooks>` + "`" + ` to interactively
      modify the parameters.
      :::
  execution_substitutions:
    remark_019: >-
      Notice how a new file [019/Project.toml](./019/Project.toml) and
      [019/Manifest.toml](./019/Manifest.toml) are automatically generated.

pins_file: requirements.txt

intersphinx:
  ampform:
    url: https://ampform.readthedocs.io/stable
  ampform-0.14.x:
    url: https://ampform.readthedocs.io/0.14.x
  attrs:
    url: https://www.attrs.org/en/{version}
  expertsystem:
    url: https://expertsystem.readthedocs.io/stable
  graphviz:
    url: https://graphviz.readthedocs.io/en/stable
  hepstats:
    url: https://scikit-hep.org/hepstats
  IPython:
    url: https://ipython.readthedocs.io/en/{version}
  ipywidgets:
    url: https://ipywidgets.readthedocs.io/en/{version}
  jax:
    url: https://jax.readthedocs.io/en/latest
  matplotlib:
    url: https://matplotlib.org/{version}
  mpl_interactions:
    url: https://mpl-interactions.readthedocs.io/en/{version}
    package: mpl-interactions
  numba:
    url: https://numba.pydata.org/numba-doc/latest
  numpy:
    url: https://numpy.org/doc/{minor}
  pdg:
    url: https://pdgapi.lbl.gov/doc
  plotly:
    url: https://plotly.com/python-api-reference/
  pwa:
    url: https://pwa.readthedocs.io
  python:
    url: https://docs.python.org/3
  qrules:
    url: https://qrules.readthedocs.io/stable
  qrules-0.9.x:
    url: https://qrules.readthedocs.io/0.9.x
  scipy:
    url: https://docs.scipy.org/doc/scipy-1.7.0
  sympy:
    url: https://docs.sympy.org/latest
  tensorwaves:
    url: https://tensorwaves.readthedocs.io/stable
  torch:
    url: https://pytorch.org/docs/stable
  zfit:
    url: https://zfit.readthedocs.io/en/latest

intersphinx_remap:
  ipython:
    "8.12.2": "8.12.1"
    "8.12.3": "8.12.1"
  ipywidgets:
    "8.0.3": "8.0.5"
    "8.0.4": "8.0.5"
    "8.0.6": "8.0.5"
    "8.1.1": "8.1.2"
  matplotlib:
    "3.5.1": "3.5.0"
  mpl-interactions:
    "0.24.1": "0.24.0"

linkcheck:
  anchors: false
  max_concurrent: 10
  request_timeout: 10s
  rate_limit_delay: 100ms
  max_redirects: 5
  cache_path: .cache/linkcheck.sqlite
  cache_ttl: 168h
  ignore:
    - http://127.0.0.1:8000
    - https://atom.io # often unstable
    - https://doi.org/10.1002/andp.19955070504 # 403 for onlinelibrary.wiley.com
    - https://doi.org/10.1155/2020/6674595 # 403 hindawi.com
    - https://doi.org/10.7566/JPSCP.26.022002 # 403 for journals.jps.jp
    - https://downloads.hindawi.com # 403
    - https://github.com/organizations/ComPWA/settings/repository-defaults # private
    - https://ieeexplore.ieee.org/document/6312940 # 401
    - https://indico.ific.uv.es/event/6803 # SSL error
    - https://journals.aps.org
    - https://leetcode.com
    - https://mybinder.org # often unstable
    - https://open.vscode.dev
    - https://rosettacode.org
    - https://stackoverflow.com
    - https://via.placeholder.com # irregular timeout
    - https://www.andiamo.co.uk/resources/iso-language-codes # 443, but works
    - https://www.bookfinder.com
    - https://github.com/ComPWA/RUB-EP1-AG/.* # private
    - https://github.com/orgs/ComPWA/projects/\d+ # private

reports:
  dir: docs/report
  index: docs/report.md

renderer_options:
  autosectionlabel_prefix_document: true
  bibtex_bibfiles: [bibliography.bib]
  bibtex_reference_style: author_year
  codeautolink_concat_default: true
  copybutton_prompt_is_regexp: true
  copybutton_prompt_text: '>>> |\.\.\. '
  default_role: py:obj
  graphviz_output_format: svg
  html_last_updated_fmt: "%-d %B %Y"
  html_show_copyright: false
  nitpicky: true
  primary_domain: py
  suppress_warnings:
    - myst.domains
    - mystnb.unknown_mime_type
  todo_include_todos: true
`
