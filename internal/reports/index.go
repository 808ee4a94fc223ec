package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// generatedMarker is written at the top of the index so humans do not edit
// the file by hand.
const generatedMarker = "<!-- Generated by docsite reports. Do not edit. -->"

// WriteIndex renders the report index table to path. The write is atomic:
// content is staged to a temp file in the target directory and renamed into
// place, so a watching renderer never sees a partial index.
func WriteIndex(path string, reports []Report) error {
	var b strings.Builder
	b.WriteString(generatedMarker + "\n\n")
	b.WriteString("# Technical reports\n\n")
	if len(reports) == 0 {
		b.WriteString("No technical reports available.\n")
	} else {
		b.WriteString("| No. | Report |\n")
		b.WriteString("| --- | ------ |\n")
		for _, r := range reports {
			fmt.Fprintf(&b, "| %s | [%s](./%s) |\n", r.ID, escapeCell(r.Title), r.File)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".reports-*")
	if err != nil {
		return fmt.Errorf("stage report index: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(b.String()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write report index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report index: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish report index: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
