package inspect

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the reports as a YAML sequence
func WriteYAML(w io.Writer, reports []*Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}
	return enc.Close()
}

// WriteText writes the reports as an indented tree, one entity per line
func WriteText(w io.Writer, reports []*Report) error {
	for _, r := range reports {
		if err := writeTree(w, r, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeTree(w io.Writer, r *Report, depth int) error {
	contentType := r.ContentType
	if contentType == "" {
		contentType = "(none)"
	}

	line := strings.Repeat("  ", depth) + contentType
	if len(r.Kinds) > 0 {
		line += " [" + strings.Join(r.Kinds, ",") + "]"
	}
	if r.Subject != "" {
		line += fmt.Sprintf(" %q", r.Subject)
	}
	if _, err := fmt.Fprintf(w, "%s %d bytes\n", line, r.Size); err != nil {
		return err
	}

	for _, p := range r.Parts {
		if err := writeTree(w, p, depth+1); err != nil {
			return err
		}
	}
	return nil
}
