package surface

import (
	"encoding/json"
	"io"

	"github.com/cropwise/cropwise/pkg/report"
)

// JSONRenderer marshals a Report to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, rep *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
