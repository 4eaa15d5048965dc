package theme

import (
	"strings"
)

// renderCSS builds the :root custom-property block followed by the
// severity utility selectors the dashboard's tables and badges use.
func renderCSS(r *Registry) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, f := range Families {
		for _, t := range r.Tokens(f) {
			writeProperty(&b, CSSVar(f, t.Name), t.Value)
		}
	}
	for _, c := range r.composites {
		writeProperty(&b, "--"+c.Name, c.Value)
	}
	b.WriteString("}\n")

	for _, t := range r.Tokens(FamilySeverity) {
		b.WriteString(`[data-severity="`)
		b.WriteString(t.Name)
		b.WriteString(`"] { --tone: var(`)
		b.WriteString(CSSVar(FamilySeverity, t.Name))
		b.WriteString("); }\n")
	}
	return b.String()
}

// CSSVar returns the custom-property name of a base token.
func CSSVar(f Family, name string) string {
	return "--" + string(f) + "-" + name
}

func writeProperty(b *strings.Builder, name, value string) {
	b.WriteString("  ")
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString(";\n")
}
