package views

import (
	"fmt"
	"io"

	"github.com/KirkDiggler/calamity-catalog/internal/attack"
)

// RenderAttack writes a rolled turn
func RenderAttack(w io.Writer, p *attack.Preview) error {
	s := NewStyles(w, DefaultPalette)

	crit := fmt.Sprintf("crits on %d+", p.CritThreshold)
	if p.CritThreshold > 20 {
		crit = "cannot crit"
	}
	lines := []string{
		s.Title.Render(p.Weapon.Name) + " " + s.Muted.Render(fmt.Sprintf("(%d attacks, %s)", len(p.Swings), crit)),
	}
	for i, swing := range p.Swings {
		line := s.Text.Render(fmt.Sprintf("#%d  d20=%-2d  %d dmg", i+1, swing.Roll, swing.Damage))
		if swing.Critical {
			line += " " + s.Warning.Render("CRITICAL")
		}
		lines = append(lines, line)
	}
	lines = append(lines, s.Accent.Render(fmt.Sprintf("Total: %d", p.Total)))
	return writeLines(w, lines...)
}
