package crop

import "fmt"

// InputOutOfRangeError reports an environmental or location value outside
// its documented domain. Text is set instead of Value for enum fields.
type InputOutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
	Text  string
}

func (e *InputOutOfRangeError) Error() string {
	if e.Text != "" || e.Min == e.Max {
		return fmt.Sprintf("%s: unsupported value %q", e.Field, e.Text)
	}
	return fmt.Sprintf("%s: %g outside [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}
