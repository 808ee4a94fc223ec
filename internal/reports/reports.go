// Package reports generates the index of technical reports from the report
// sources in the documentation tree. Each report is a numbered Markdown file
// or Jupyter notebook; the index is a generated Markdown table the site
// includes in its table of contents.
package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Report is one technical report discovered in the report directory.
type Report struct {
	ID    string // zero-padded report number, e.g. "013"
	File  string // file name relative to the report directory
	Title string
}

var reportFile = regexp.MustCompile(`^(\d{3})[^/]*\.(md|ipynb)$`)

var titleCaser = cases.Title(language.English, cases.NoLower)

// Scan discovers reports in dir, sorted by report number. Files that do not
// look like numbered report sources are ignored. A report without a heading
// gets a title derived from its file name.
func Scan(dir string) ([]Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read report directory: %w", err)
	}

	var found []Report
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := reportFile.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		title, err := extractTitle(path)
		if err != nil {
			return nil, fmt.Errorf("extract title from %s: %w", entry.Name(), err)
		}
		if title == "" {
			title = fallbackTitle(entry.Name())
		}
		found = append(found, Report{ID: m[1], File: entry.Name(), Title: title})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].ID != found[j].ID {
			return found[i].ID < found[j].ID
		}
		return found[i].File < found[j].File
	})
	return found, nil
}

func extractTitle(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(path, ".ipynb") {
		return notebookTitle(data)
	}
	return markdownTitle(data), nil
}

// notebookTitle finds the first heading in the first Markdown cell of a
// Jupyter notebook.
func notebookTitle(data []byte) (string, error) {
	var nb struct {
		Cells []struct {
			CellType string          `json:"cell_type"`
			Source   json.RawMessage `json:"source"`
		} `json:"cells"`
	}
	if err := json.Unmarshal(data, &nb); err != nil {
		return "", fmt.Errorf("parse notebook: %w", err)
	}
	for _, cell := range nb.Cells {
		if cell.CellType != "markdown" {
			continue
		}
		if title := markdownTitle([]byte(cellSource(cell.Source))); title != "" {
			return title, nil
		}
	}
	return "", nil
}

// cellSource handles both notebook source encodings: a list of lines or a
// single string.
func cellSource(raw json.RawMessage) string {
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func fallbackTitle(name string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(name, ".ipynb"), ".md")
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return titleCaser.String("Report " + strings.TrimSpace(base))
}
