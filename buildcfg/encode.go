package buildcfg

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatSCSS = "scss"
)

// SCSSPreamble renders the variables as the stylesheet preamble injected
// into every SCSS module.
func (d Descriptor) SCSSPreamble() string {
	var b strings.Builder
	for _, v := range d.Variables {
		fmt.Fprintf(&b, "$%s: %s;\n", v.Name, v.Value)
	}
	return b.String()
}

// Encode writes the descriptor in the given format.
func (d Descriptor) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatSCSS:
		_, err := io.WriteString(w, d.SCSSPreamble())
		return err
	default:
		return fmt.Errorf("unknown descriptor format %q", format)
	}
}
