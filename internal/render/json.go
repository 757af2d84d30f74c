package render

import (
	"encoding/json"
	"io"
)

// WriteJSON writes v as 2-space indented JSON followed by a newline. HTML
// characters and non-ASCII text are written as-is.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
