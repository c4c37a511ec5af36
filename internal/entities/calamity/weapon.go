// Package calamity holds the canonical catalog entities for the Calamity tabletop adaptation
package calamity

import (
	"time"
)

// Weapon is one catalog entry. Every wire schema the catalog API has served is adapted into
// this type at the client boundary.
type Weapon struct {
	ID          string
	Name        string
	Description string
	Class       WeaponClass
	Element     Element
	Rarity      Rarity
	// RarityLevel is the raw -1..17 in-game rarity when the source reported one
	RarityLevel *int
	Stats       Stats
	Price       int
	Quality     int
	Abilities   string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stats are the numeric combat values of a weapon
type Stats struct {
	BaseDamage int
	// CriticalChance is the crit threshold on a d20, 1..20
	CriticalChance int
	AttacksPerTurn float64
	Range          int
	Knockback      float64
}

// WeaponClass is the combat class of a weapon
type WeaponClass string

// Weapon classes
const (
	ClassMelee  WeaponClass = "MELEE"
	ClassRanged WeaponClass = "RANGED"
	ClassMage   WeaponClass = "MAGE"
	ClassSummon WeaponClass = "SUMMON"
	ClassRogue  WeaponClass = "ROGUE"
)

// WeaponClasses lists every class in display order
var WeaponClasses = []WeaponClass{ClassMelee, ClassRanged, ClassMage, ClassSummon, ClassRogue}

// classAliases covers spellings used by older payloads
var classAliases = map[string]WeaponClass{
	"MAGIC":    ClassMage,
	"SUMMONER": ClassSummon,
}

// ParseWeaponClass resolves a class name, case-insensitive, including legacy spellings
func ParseWeaponClass(value string) (WeaponClass, bool) {
	key := normalizeKey(value)
	for _, c := range WeaponClasses {
		if string(c) == key {
			return c, true
		}
	}
	if c, ok := classAliases[key]; ok {
		return c, true
	}
	return "", false
}

// String returns the wire form of the class
func (c WeaponClass) String() string {
	return string(c)
}
