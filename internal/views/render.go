package views

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/fetch"
)

// suggestionLimit caps the "did you mean" list
const suggestionLimit = 3

const barWidth = 20

// Stat bar ceilings
const (
	maxBarDamage    = 200
	maxBarCrit      = 20
	maxBarAttacks   = 5
	maxBarKnockback = 10
)

// RenderWeapons writes the list page for the view's current state
func RenderWeapons(w io.Writer, v *WeaponsView) error {
	s := NewStyles(w, DefaultPalette)
	state := v.State()

	switch state.Status {
	case fetch.StatusIdle:
		return writeLines(w, s.Muted.Render("Weapons not loaded."))
	case fetch.StatusLoading:
		return writeLines(w, loadingLine(s, "Loading weapons", state.Attempt))
	case fetch.StatusError:
		return writeLines(w, errorLines(s, state.Err)...)
	}

	all := state.Value
	visible := v.Visible()
	filter := v.Filter()

	lines := []string{s.Title.Render("Calamity Weapons")}
	if len(visible) == 0 {
		lines = append(lines, s.Warning.Render("No weapons match the current filters."))
		if suggestions := v.Suggest(filter.Search, suggestionLimit); len(suggestions) > 0 {
			lines = append(lines, s.Muted.Render("Did you mean: "+strings.Join(suggestions, ", ")+"?"))
		}
		return writeLines(w, lines...)
	}

	lines = append(lines, weaponTable(s, visible)...)
	lines = append(lines, "", s.Muted.Render(fmt.Sprintf("Showing %d of %d weapons", len(visible), len(all))))
	return writeLines(w, lines...)
}

// RenderDetail writes the detail page for the view's current state
func RenderDetail(w io.Writer, v *DetailView) error {
	s := NewStyles(w, DefaultPalette)
	state := v.State()

	switch state.Status {
	case fetch.StatusIdle:
		return writeLines(w, s.Muted.Render("Weapon not loaded."))
	case fetch.StatusLoading:
		return writeLines(w, loadingLine(s, "Loading weapon details", state.Attempt))
	case fetch.StatusError:
		return writeLines(w, errorLines(s, state.Err)...)
	}
	if state.Value == nil {
		return writeLines(w, s.Danger.Render("Weapon not found."))
	}
	return writeLines(w, weaponDetail(s, state.Value)...)
}

// RenderWeapon writes one weapon without any fetch state, as after a mutation
func RenderWeapon(w io.Writer, weapon *calamity.Weapon) error {
	return writeLines(w, weaponDetail(NewStyles(w, DefaultPalette), weapon)...)
}

// RenderElements writes the element reference table
func RenderElements(w io.Writer, elements []calamity.ElementInfo) error {
	s := NewStyles(w, DefaultPalette)
	if len(elements) == 0 {
		return writeLines(w, s.Muted.Render("No elements."))
	}

	nameCol := s.Header.Width(16)
	groupCol := s.Header.Width(10)
	bonusCol := s.Header.Width(7)

	lines := []string{
		s.Title.Render("Elements"),
		nameCol.Render("ELEMENT") + groupCol.Render("GROUP") + bonusCol.Render("BONUS") + s.Header.Render("DESCRIPTION"),
	}
	for _, info := range elements {
		name := info.DisplayName
		if name == "" {
			name = string(info.Element)
		}
		lines = append(lines,
			s.Element(info.Element).Width(16).Render(name)+
				s.Muted.Width(10).Render(string(info.Group))+
				s.Text.Width(7).Render(fmt.Sprintf("x%.1f", info.Element.DamageBonus()))+
				s.Text.Render(info.Description))
	}
	return writeLines(w, lines...)
}

// RenderError writes a failed call the same way the pages do
func RenderError(w io.Writer, err error) error {
	s := NewStyles(w, DefaultPalette)
	shape, ok := errors.AsShape(err)
	if !ok {
		return writeLines(w, s.Danger.Render("Error: "+err.Error()))
	}
	return writeLines(w, errorLines(s, shape)...)
}

func weaponTable(s Styles, weapons []*calamity.Weapon) []string {
	cols := []struct {
		title string
		width int
	}{
		{"NAME", 28}, {"CLASS", 8}, {"ELEMENT", 13}, {"RARITY", 11},
		{"DMG", 6}, {"CRIT", 6}, {"APT", 6}, {"RANGE", 6},
	}

	header := make([]string, 0, len(cols))
	for _, c := range cols {
		header = append(header, s.Header.Width(c.width).Render(c.title))
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for _, wpn := range weapons {
		cells := []string{
			s.Text.Width(cols[0].width).Render(truncate(wpn.Name, cols[0].width-1)),
			s.Class(wpn.Class).Width(cols[1].width).Render(string(wpn.Class)),
			s.Element(wpn.Element).Width(cols[2].width).Render(string(wpn.Element)),
			s.Rarity(wpn.Rarity).Width(cols[3].width).Render(string(wpn.Rarity)),
			s.Text.Width(cols[4].width).Render(strconv.Itoa(wpn.Stats.BaseDamage)),
			s.Text.Width(cols[5].width).Render(strconv.Itoa(wpn.Stats.CriticalChance)),
			s.Text.Width(cols[6].width).Render(formatFloat(wpn.Stats.AttacksPerTurn)),
			s.Text.Width(cols[7].width).Render(strconv.Itoa(wpn.Stats.Range)),
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lines
}

func weaponDetail(s Styles, w *calamity.Weapon) []string {
	lines := []string{
		s.Title.Render(w.Name),
		s.Class(w.Class).Render(string(w.Class)) + "  " +
			s.Rarity(w.Rarity).Render(rarityLabel(w)) + "  " +
			s.Element(w.Element).Render(w.Element.Info().DisplayName),
		"",
		s.Header.Render("Stats"),
		statBar(s, "Damage", strconv.Itoa(w.Stats.BaseDamage), float64(w.Stats.BaseDamage)/maxBarDamage),
		statBar(s, "Critical", strconv.Itoa(w.Stats.CriticalChance), float64(w.Stats.CriticalChance)/maxBarCrit),
		statBar(s, "Attacks/turn", formatFloat(w.Stats.AttacksPerTurn), w.Stats.AttacksPerTurn/maxBarAttacks),
		statBar(s, "Knockback", formatFloat(w.Stats.Knockback), w.Stats.Knockback/maxBarKnockback),
		s.Muted.Width(14).Render("Range") + s.Text.Render(strconv.Itoa(w.Stats.Range)),
	}

	if w.Description != "" {
		lines = append(lines, "", s.Header.Render("Description"), s.Text.Render(w.Description))
	}
	if w.Abilities != "" {
		lines = append(lines, "", s.Header.Render("Abilities"), s.Text.Render(w.Abilities))
	}

	info := []string{s.Muted.Width(14).Render("ID") + s.Text.Render(w.ID)}
	if w.Price > 0 {
		info = append(info, s.Muted.Width(14).Render("Price")+s.Text.Render(strconv.Itoa(w.Price)))
	}
	if w.Quality > 0 {
		info = append(info, s.Muted.Width(14).Render("Quality")+s.Text.Render(strconv.Itoa(w.Quality)))
	}
	info = append(info, s.Muted.Width(14).Render("Element bonus")+
		s.Text.Render(fmt.Sprintf("x%.1f", w.Element.DamageBonus())))
	if !w.CreatedAt.IsZero() {
		info = append(info, s.Muted.Width(14).Render("Added")+s.Text.Render(w.CreatedAt.Format("2006-01-02")))
	}
	lines = append(lines, "", s.Header.Render("Info"))
	return append(lines, info...)
}

func statBar(s Styles, label, value string, ratio float64) string {
	ratio = math.Max(0, math.Min(ratio, 1))
	filled := int(math.Round(ratio * barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return s.Muted.Width(14).Render(label) + s.Accent.Render(bar) + " " + s.Text.Render(value)
}

func rarityLabel(w *calamity.Weapon) string {
	if w.RarityLevel != nil {
		return fmt.Sprintf("%s (%d)", w.Rarity, *w.RarityLevel)
	}
	return string(w.Rarity)
}

func loadingLine(s Styles, subject string, attempt int) string {
	if attempt > 0 {
		return s.Muted.Render(fmt.Sprintf("%s... (retry %d)", subject, attempt))
	}
	return s.Muted.Render(subject + "...")
}

func errorLines(s Styles, shape *errors.Shape) []string {
	if shape == nil {
		return []string{s.Danger.Render("Error: unknown failure")}
	}
	return []string{
		s.Danger.Render(fmt.Sprintf("Error %d: %s", shape.StatusCode, shape.Message)),
		s.Muted.Render(errorHint(shape)),
	}
}

func errorHint(shape *errors.Shape) string {
	switch {
	case errors.IsUnauthenticated(shape):
		return "Run `catalog login` to store an API token."
	case errors.IsPermissionDenied(shape):
		return "The stored API token is not allowed to do that."
	case errors.IsCanceled(shape):
		return "The request was canceled before the catalog answered."
	case errors.IsUnavailable(shape):
		return "The catalog API is unavailable. Run the command again to retry."
	default:
		return "Run the command again to retry."
	}
}

func truncate(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
