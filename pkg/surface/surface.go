// Package surface defines output rendering for recommendation reports.
// Implementations handle different output targets: terminal, JSON, Markdown,
// HTML and Excel workbooks.
package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/cropwise/cropwise/pkg/report"
)

// Renderer produces formatted output from a Report.
type Renderer interface {
	// Render writes the formatted report to the writer.
	Render(w io.Writer, rep *report.Report) error
}

// Formats lists the names accepted by ForFormat.
var Formats = []string{"text", "json", "markdown", "html", "xlsx"}

// ForFormat returns the renderer for an output format name.
func ForFormat(name string) (Renderer, error) {
	switch strings.ToLower(name) {
	case "", "text", "terminal":
		return &TerminalRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	case "html":
		return &HTMLRenderer{}, nil
	case "xlsx", "excel":
		return &XLSXRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}

// ContentType returns the MIME type for an output format name.
func ContentType(name string) string {
	switch strings.ToLower(name) {
	case "json":
		return "application/json"
	case "markdown", "md":
		return "text/markdown; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "xlsx", "excel":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}
