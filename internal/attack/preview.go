// Package attack previews one turn of attacks with a catalog weapon at the table
package attack

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
)

// d20 is the attack die
const d20 = 20

// Swing is one attack roll
type Swing struct {
	Roll     int
	Critical bool
	Damage   int
}

// Preview is the outcome of one turn
type Preview struct {
	Weapon *calamity.Weapon
	// CritThreshold is the lowest d20 roll that crits; 21 means the weapon cannot crit
	CritThreshold int
	Swings        []Swing
	Total         int
}

// Criticals counts the critical swings
func (p *Preview) Criticals() int {
	n := 0
	for _, s := range p.Swings {
		if s.Critical {
			n++
		}
	}
	return n
}

// Config configures a Previewer
type Config struct {
	Roller dice.Roller
}

// Validate sets defaults
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Roller == nil {
		cfg.Roller = dice.DefaultRoller
	}
	return nil
}

// Previewer rolls attack previews
type Previewer struct {
	roller dice.Roller
}

// New creates a Previewer
func New(cfg *Config) (*Previewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Previewer{roller: cfg.Roller}, nil
}

// Attacks is the number of d20s rolled per turn: AttacksPerTurn rounded, at least one
func Attacks(w *calamity.Weapon) int {
	n := int(math.Round(w.Stats.AttacksPerTurn))
	if n < 1 {
		return 1
	}
	return n
}

// CritThreshold is 21 minus the weapon's critical chance, kept within 1..21
func CritThreshold(w *calamity.Weapon) int {
	threshold := d20 + 1 - w.Stats.CriticalChance
	switch {
	case threshold < 1:
		return 1
	case threshold > d20+1:
		return d20 + 1
	}
	return threshold
}

// Preview rolls one turn. A critical swing deals double base damage.
func (p *Previewer) Preview(w *calamity.Weapon) (*Preview, error) {
	if w == nil {
		return nil, errors.InvalidArgument("weapon is required")
	}

	attacks := Attacks(w)
	rolls, err := p.roller.RollN(attacks, d20)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %dd%d", attacks, d20)
	}
	if len(rolls) != attacks {
		return nil, errors.Internalf("roller returned %d results for %d attacks", len(rolls), attacks)
	}

	preview := &Preview{
		Weapon:        w,
		CritThreshold: CritThreshold(w),
		Swings:        make([]Swing, 0, attacks),
	}
	for _, roll := range rolls {
		swing := Swing{Roll: roll, Damage: w.Stats.BaseDamage}
		if roll >= preview.CritThreshold {
			swing.Critical = true
			swing.Damage *= 2
		}
		preview.Swings = append(preview.Swings, swing)
		preview.Total += swing.Damage
	}
	return preview, nil
}
