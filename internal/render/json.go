// Package render writes catalogues as JSON, Mermaid class diagrams and
// textual diffs.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
)

// JSON writes c as indented JSON. Module keys come out sorted, so output
// for a normalized catalogue is byte-stable.
func JSON(w io.Writer, c catalogue.Catalogue) error {
	if c == nil {
		c = catalogue.Catalogue{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding catalogue: %w", err)
	}
	return nil
}

// JSONString is JSON into a string.
func JSONString(c catalogue.Catalogue) (string, error) {
	var b strings.Builder
	if err := JSON(&b, c); err != nil {
		return "", err
	}
	return b.String(), nil
}
