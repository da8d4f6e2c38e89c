// Package reporting renders evaluation reports for people and for CI.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spboyer/versus/internal/models"
)

// Format names an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJUnit    Format = "junit"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatJSON, FormatMarkdown, FormatHTML, FormatJUnit}

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTable, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q: must be one of table, json, markdown, html, junit", s)
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJUnit:
		return ".xml"
	default:
		return ".txt"
	}
}

// jsonOutput is the JSON rendering: the report envelope plus gate results.
type jsonOutput struct {
	*models.Report
	Gates []GateResult `json:"gates,omitempty"`
}

// Render writes report to w in the requested format.
func Render(w io.Writer, report *models.Report, format Format, gates []GateResult) error {
	switch format {
	case FormatTable, "":
		if err := WriteTable(w, report, gates); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n"+FormatInterpretation(report))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonOutput{Report: report, Gates: gates})
	case FormatMarkdown:
		_, err := io.WriteString(w, FormatMarkdownReport(report, gates))
		return err
	case FormatHTML:
		return WriteHTML(w, report, gates)
	case FormatJUnit:
		return WriteJUnitXML(w, report, gates)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
