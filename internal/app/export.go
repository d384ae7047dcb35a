package app

import (
	"fmt"
	"strings"
)

// ExportFormat selects the rendering of an exported run.
type ExportFormat string

const (
	ExportText     ExportFormat = "txt"
	ExportMarkdown ExportFormat = "md"
)

// ExportDocument renders the recorded results as a single document, one
// labeled section per stage in registry order. Stages with no recorded result
// are omitted. The rendering is a pure function of its arguments, so exporting
// the same results twice yields identical bytes.
func ExportDocument(title string, results SessionResults, format ExportFormat) string {
	var b strings.Builder

	separator := "\n\n" + strings.Repeat("=", 30) + "\n\n"
	if format == ExportMarkdown {
		separator = "\n\n---\n\n"
		fmt.Fprintf(&b, "# %s\n\n", title)
	} else {
		fmt.Fprintf(&b, "TITLE: %s\n\n", title)
	}

	for _, stage := range Stages() {
		text, ok := results[stage.Slot]
		if !ok || text == "" {
			continue
		}
		if format == ExportMarkdown {
			b.WriteString("## " + stage.Label)
		} else {
			b.WriteString(strings.ToUpper(stage.Label))
		}
		b.WriteString("\n")
		b.WriteString(text)
		b.WriteString(separator)
	}
	return b.String()
}

// ExportFileName derives the download file name from the video title:
// non-alphanumerics become underscores, the rest is lower-cased.
func ExportFileName(title string, format ExportFormat) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, title)
	if sanitized == "" {
		sanitized = "untitled"
	}
	return sanitized + "." + string(format)
}
