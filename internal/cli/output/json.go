package output

import (
	"encoding/json"
	"io"
)

// PrintJSON writes data as indented JSON.
func PrintJSON(out io.Writer, data any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
