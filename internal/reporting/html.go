package reporting

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/spboyer/versus/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

const htmlStyle = `body{font-family:system-ui,sans-serif;max-width:56rem;margin:2rem auto;padding:0 1rem}
table{border-collapse:collapse}th,td{border:1px solid #ccc;padding:.25rem .75rem;text-align:left}
code{background:#f4f4f4;padding:0 .25rem}`

// WriteHTML renders the markdown report as a standalone HTML page.
func WriteHTML(w io.Writer, report *models.Report, gates []GateResult) error {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(FormatMarkdownReport(report, gates)), &body); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}

	title := html.EscapeString("versus " + string(report.Mode) + " report")
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n%s</body>\n</html>\n",
		title, htmlStyle, body.String())
	return err
}
