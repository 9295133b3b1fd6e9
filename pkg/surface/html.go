package surface

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/cropwise/cropwise/pkg/report"
)

const htmlStyle = `body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;color:#1f2933}
table{border-collapse:collapse;width:100%}th,td{border:1px solid #d9e2ec;padding:.4rem .6rem;text-align:left}
th{background:#f0f4f8}@media print{body{margin:0}}`

// HTMLRenderer writes a printable standalone HTML page.
type HTMLRenderer struct{}

func (r *HTMLRenderer) Render(w io.Writer, rep *report.Report) error {
	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(BuildMarkdown(rep)), &body); err != nil {
		return fmt.Errorf("markdown convert: %w", err)
	}

	title := html.EscapeString("Crop Recommendations for " + placeName(rep))
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n%s</body>\n</html>\n",
		title, htmlStyle, body.String())
	return err
}
