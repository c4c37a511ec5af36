package views

import (
	"io"
)

// Section is one area of the catalog site
type Section struct {
	Name      string
	Command   string
	Available bool
}

// Sections lists the catalog areas; only weapons has data so far
var Sections = []Section{
	{Name: "Weapons", Command: "list", Available: true},
	{Name: "Enemies"},
	{Name: "NPCs"},
	{Name: "Biomes"},
	{Name: "Items"},
}

// RenderSections writes the section index
func RenderSections(w io.Writer) error {
	s := NewStyles(w, DefaultPalette)
	lines := []string{s.Title.Render("Calamity Catalog")}
	for _, sec := range Sections {
		status := s.Muted.Render("in development")
		if sec.Available {
			status = s.Accent.Render("catalog " + sec.Command)
		}
		lines = append(lines, s.Text.Width(12).Render(sec.Name)+status)
	}
	return writeLines(w, lines...)
}
