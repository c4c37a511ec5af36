package views

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

// Palette holds the hex colors used by the catalog views
type Palette struct {
	Text    string
	Muted   string
	Accent  string
	Danger  string
	Warning string

	Classes  map[calamity.WeaponClass]string
	Rarities map[calamity.Rarity]string
}

// DefaultPalette mirrors the catalog site colors
var DefaultPalette = Palette{
	Text:    "#e5e7eb",
	Muted:   "#9ca3af",
	Accent:  "#f59e0b",
	Danger:  "#ef4444",
	Warning: "#eab308",
	Classes: map[calamity.WeaponClass]string{
		calamity.ClassMelee:  "#ef4444",
		calamity.ClassRanged: "#06b6d4",
		calamity.ClassMage:   "#3b82f6",
		calamity.ClassSummon: "#eab308",
		calamity.ClassRogue:  "#22c55e",
	},
	Rarities: map[calamity.Rarity]string{
		calamity.RarityLegendary: "#eab308",
		calamity.RarityEpic:      "#a855f7",
		calamity.RarityRare:      "#3b82f6",
		calamity.RarityUncommon:  "#22c55e",
		calamity.RarityCommon:    "#6b7280",
	},
}

// Styles are the lipgloss styles bound to one output
type Styles struct {
	palette  Palette
	renderer *lipgloss.Renderer

	Title   lipgloss.Style
	Header  lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Danger  lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles binds the palette to w. Color output is dropped when w is not a terminal.
func NewStyles(w io.Writer, p Palette) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		palette:  p,
		renderer: r,

		Title: r.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),

		Header: r.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Bold(true),

		Text: r.NewStyle().
			Foreground(lipgloss.Color(p.Text)),

		Muted: r.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		Accent: r.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),

		Danger: r.NewStyle().
			Foreground(lipgloss.Color(p.Danger)).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(lipgloss.Color(p.Warning)),
	}
}

// Class returns the style for a weapon class badge
func (s Styles) Class(c calamity.WeaponClass) lipgloss.Style {
	return s.colored(s.palette.Classes[c])
}

// Rarity returns the style for a rarity badge
func (s Styles) Rarity(r calamity.Rarity) lipgloss.Style {
	color, ok := s.palette.Rarities[r]
	if !ok {
		color = s.palette.Rarities[calamity.RarityCommon]
	}
	return s.colored(color)
}

// Element colors come from the element table itself
func (s Styles) Element(e calamity.Element) lipgloss.Style {
	return s.colored(e.Info().Color)
}

func (s Styles) colored(color string) lipgloss.Style {
	if color == "" {
		return s.Text
	}
	return s.renderer.NewStyle().Foreground(lipgloss.Color(color))
}
