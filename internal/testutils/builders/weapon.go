// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

// WeaponBuilder provides a fluent interface for building test Weapon instances
type WeaponBuilder struct {
	weapon *calamity.Weapon
}

// NewWeaponBuilder creates a new builder with minimal defaults
func NewWeaponBuilder() *WeaponBuilder {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &WeaponBuilder{
		weapon: &calamity.Weapon{
			ID:      "weapon-test-1",
			Name:    "Test Blade",
			Class:   calamity.ClassMelee,
			Element: calamity.ElementNeutral,
			Rarity:  calamity.RarityCommon,
			Stats: calamity.Stats{
				BaseDamage:     10,
				CriticalChance: 4,
				AttacksPerTurn: 1,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the weapon ID
func (b *WeaponBuilder) WithID(id string) *WeaponBuilder {
	b.weapon.ID = id
	return b
}

// WithName sets the weapon name
func (b *WeaponBuilder) WithName(name string) *WeaponBuilder {
	b.weapon.Name = name
	return b
}

// WithDescription sets the flavor text
func (b *WeaponBuilder) WithDescription(description string) *WeaponBuilder {
	b.weapon.Description = description
	return b
}

// WithClass sets the weapon class
func (b *WeaponBuilder) WithClass(class calamity.WeaponClass) *WeaponBuilder {
	b.weapon.Class = class
	return b
}

// WithElement sets the damage element
func (b *WeaponBuilder) WithElement(element calamity.Element) *WeaponBuilder {
	b.weapon.Element = element
	return b
}

// WithRarity sets the tier without a level
func (b *WeaponBuilder) WithRarity(rarity calamity.Rarity) *WeaponBuilder {
	b.weapon.Rarity = rarity
	b.weapon.RarityLevel = nil
	return b
}

// WithRarityLevel sets the in-game level and the tier derived from it
func (b *WeaponBuilder) WithRarityLevel(level int) *WeaponBuilder {
	b.weapon.RarityLevel = &level
	b.weapon.Rarity = calamity.RarityFromLevel(level)
	return b
}

// WithDamage sets base damage
func (b *WeaponBuilder) WithDamage(damage int) *WeaponBuilder {
	b.weapon.Stats.BaseDamage = damage
	return b
}

// WithCrit sets the critical chance
func (b *WeaponBuilder) WithCrit(crit int) *WeaponBuilder {
	b.weapon.Stats.CriticalChance = crit
	return b
}

// WithAttacks sets attacks per turn
func (b *WeaponBuilder) WithAttacks(attacks float64) *WeaponBuilder {
	b.weapon.Stats.AttacksPerTurn = attacks
	return b
}

// WithRange sets the range
func (b *WeaponBuilder) WithRange(reach int) *WeaponBuilder {
	b.weapon.Stats.Range = reach
	return b
}

// WithPrice sets the price
func (b *WeaponBuilder) WithPrice(price int) *WeaponBuilder {
	b.weapon.Price = price
	return b
}

// Build returns the weapon
func (b *WeaponBuilder) Build() *calamity.Weapon {
	return b.weapon
}

// Draft converts the weapon into a create request
func (b *WeaponBuilder) Draft() *catalog.Draft {
	w := b.weapon
	level := 0
	if w.RarityLevel != nil {
		level = *w.RarityLevel
	}
	return &catalog.Draft{
		Name:        w.Name,
		Description: w.Description,
		Class:       w.Class,
		Element:     w.Element,
		RarityLevel: level,
		Stats:       w.Stats,
		Price:       w.Price,
		Quality:     w.Quality,
		Abilities:   w.Abilities,
		ImageURL:    w.ImageURL,
	}
}
