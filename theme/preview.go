package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var familyTitle = lipgloss.NewStyle().Bold(true).MarginTop(1)

// RenderSwatches draws each family as a row of colored labels for the
// terminal.
func RenderSwatches(r *Registry) string {
	var b strings.Builder
	for _, f := range Families {
		b.WriteString(familyTitle.Render(string(f)))
		b.WriteString("\n")
		cells := make([]string, 0, len(r.tokens[f]))
		for _, t := range r.Tokens(f) {
			cells = append(cells, swatch(t.Name+" "+t.Value, t.Value))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	b.WriteString(familyTitle.Render("composites"))
	b.WriteString("\n")
	for _, c := range r.composites {
		b.WriteString("  ")
		b.WriteString(c.Name)
		b.WriteString(": ")
		b.WriteString(c.Value)
		b.WriteString("\n")
	}
	return b.String()
}

func swatch(label, value string) string {
	bg := rgbPart(value)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(ReadableForeground(bg))).
		Padding(0, 1).
		MarginRight(1).
		Render(label)
}

// ReadableForeground picks black or white text for a background color.
func ReadableForeground(background string) string {
	c, err := colorful.Hex(rgbPart(background))
	if err != nil {
		return "#ffffff"
	}
	_, _, l := c.Hcl()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
